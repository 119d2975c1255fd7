package chash_test

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/theflywheel/chash"
)

// BenchmarkMetrics represents metrics for a single benchmark run
type BenchmarkMetrics struct {
	Name       string             `json:"name"`
	Category   string             `json:"category"`
	Table      string             `json:"table"`
	Operations int                `json:"operations"`
	NsPerOp    float64            `json:"ns_per_op"`
	Metrics    map[string]float64 `json:"metrics"`
}

// BenchmarkSummary represents all benchmark results
type BenchmarkSummary struct {
	Timestamp string             `json:"timestamp"`
	CommitID  string             `json:"commit_id"`
	Branch    string             `json:"branch"`
	GoVersion string             `json:"go_version"`
	Results   []BenchmarkMetrics `json:"results"`
}

type tableFactory struct {
	name string
	make func() (chash.Table, error)
}

// tableFactories lists every variant the scale benchmarks compare.
var tableFactories = []tableFactory{
	{"Chaining", func() (chash.Table, error) { return chash.NewChaining(chash.DefaultCapacity) }},
	{"ChainingFNV", func() (chash.Table, error) {
		return chash.NewChaining(chash.DefaultCapacity, chash.WithHashFunc(chash.FNVHash))
	}},
	{"Probing", func() (chash.Table, error) { return chash.NewProbing(chash.DefaultCapacity) }},
}

// getMemoryStats returns the current memory stats as a map
func getMemoryStats() map[string]float64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return map[string]float64{
		"alloc_mb": float64(m.Alloc) / (1024 * 1024),
		"sys_mb":   float64(m.Sys) / (1024 * 1024),
	}
}

// cleanupMetrics removes per-batch progress metrics before saving
func cleanupMetrics(metrics *BenchmarkMetrics) {
	if metrics.Metrics == nil {
		return
	}

	filtered := make(map[string]float64)
	for key, value := range metrics.Metrics {
		if strings.HasPrefix(key, "batch_rate_") || strings.HasPrefix(key, "memory_mb_") {
			continue
		}
		filtered[key] = value
	}
	metrics.Metrics = filtered
}

// gitInfo reads the current commit and branch from the repository root
func gitInfo(repoRoot string) (commitID, branch string) {
	commitID, branch = "local", "dev"

	head, err := os.ReadFile(filepath.Join(repoRoot, ".git", "HEAD"))
	if err != nil {
		return commitID, branch
	}

	content := strings.TrimSpace(string(head))
	if !strings.HasPrefix(content, "ref: ") {
		return commitID, branch
	}

	ref := strings.TrimPrefix(content, "ref: ")
	branch = strings.TrimPrefix(ref, "refs/heads/")
	if data, err := os.ReadFile(filepath.Join(repoRoot, ".git", ref)); err == nil {
		commitID = strings.TrimSpace(string(data))
		if len(commitID) >= 8 {
			commitID = commitID[:8]
		}
	}
	return commitID, branch
}

// saveBenchmarkResult appends a result to benchmark_history/<resultsFile>
func saveBenchmarkResult(metrics BenchmarkMetrics, resultsFile string) error {
	cleanupMetrics(&metrics)

	currentDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	// bench/ sits one level below the repository root
	repoRoot := filepath.Dir(currentDir)
	benchmarkDir := filepath.Join(repoRoot, "benchmark_history")
	if err := os.MkdirAll(benchmarkDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	commitID, branch := gitInfo(repoRoot)
	summary := BenchmarkSummary{
		Timestamp: time.Now().Format(time.RFC3339),
		CommitID:  commitID,
		Branch:    branch,
		GoVersion: runtime.Version(),
		Results:   []BenchmarkMetrics{metrics},
	}

	latestFile := filepath.Join(benchmarkDir, resultsFile)
	if existing, err := os.ReadFile(latestFile); err == nil {
		var prev BenchmarkSummary
		if err := json.Unmarshal(existing, &prev); err == nil {
			summary.Results = append(prev.Results, metrics)
		}
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %w", err)
	}
	if err := os.WriteFile(latestFile, data, 0644); err != nil {
		return fmt.Errorf("error writing file: %w", err)
	}

	fmt.Printf("Benchmark results saved to: %s\n", latestFile)
	return nil
}

// runScale inserts keys, verifies a pseudo-random sample and then every key,
// recording rates into metrics.
func runScale(b *testing.B, ht chash.Table, keys []int, sampleSize int, metrics *BenchmarkMetrics) {
	numKeys := len(keys)
	progressInterval := numKeys / 10
	if progressInterval == 0 {
		progressInterval = 1
	}

	runtime.GC()

	b.Logf("Starting insertion of %d keys into %s...", numKeys, ht.Name())
	b.StartTimer()
	writeStart := time.Now()

	for i, key := range keys {
		ht.Insert(key, i)

		if (i+1)%progressInterval == 0 {
			b.StopTimer()
			rate := float64(i+1) / time.Since(writeStart).Seconds()
			b.Logf("Inserted %d keys... (%.2f keys/sec)", i+1, rate)
			metrics.Metrics[fmt.Sprintf("batch_rate_%d", i+1)] = rate
			metrics.Metrics[fmt.Sprintf("memory_mb_%d", i+1)] = getMemoryStats()["alloc_mb"]
			b.StartTimer()
		}
	}

	b.StopTimer()
	writeTime := time.Since(writeStart)
	metrics.Metrics["insertion_rate"] = float64(numKeys) / writeTime.Seconds()
	b.Logf("Time to insert %d keys: %v", numKeys, writeTime)

	if ht.Size() != numKeys {
		b.Fatalf("Expected size %d, got %d", numKeys, ht.Size())
	}

	b.StartTimer()
	randomStart := time.Now()
	for i := 0; i < sampleSize; i++ {
		idx := (i*31 + 17) % numKeys
		val, found := ht.Find(keys[idx])
		if !found {
			b.Fatalf("Random key %d not found", keys[idx])
		}
		if val != idx {
			b.Fatalf("Value mismatch for random key %d: expected %d, got %d", keys[idx], idx, val)
		}
	}
	b.StopTimer()
	randomTime := time.Since(randomStart)
	metrics.Metrics["random_lookup_rate"] = float64(sampleSize) / randomTime.Seconds()

	b.StartTimer()
	seqStart := time.Now()
	for i, key := range keys {
		if val, found := ht.Find(key); !found || val != i {
			b.Fatalf("Key %d: expected (%d, true), got (%d, %v)", key, i, val, found)
		}
	}
	b.StopTimer()
	seqTime := time.Since(seqStart)
	metrics.Metrics["sequential_lookup_rate"] = float64(numKeys) / seqTime.Seconds()

	metrics.Metrics["final_capacity"] = float64(ht.Capacity())
	metrics.Metrics["load_factor"] = float64(ht.Size()) / float64(ht.Capacity())
	for k, v := range getMemoryStats() {
		metrics.Metrics[k] = v
	}
	metrics.NsPerOp = float64(writeTime.Nanoseconds()+randomTime.Nanoseconds()+seqTime.Nanoseconds()) /
		float64(2*numKeys+sampleSize)

	b.Logf("%s: capacity %d, insert %v, random lookups %v, sequential lookups %v",
		ht.Name(), ht.Capacity(), writeTime, randomTime, seqTime)
}
