package main

import (
	"fmt"
	"log"
	"os"

	"github.com/theflywheel/chash"
)

func main() {
	chaining, err := chash.NewChaining(4, chash.WithHashFunc(chash.ModuloHash), chash.WithTrace(os.Stdout))
	if err != nil {
		log.Fatalf("Failed to create chaining table: %v", err)
	}

	probing, err := chash.NewProbing(4, chash.WithHashFunc(chash.ModuloHash), chash.WithTrace(os.Stdout))
	if err != nil {
		log.Fatalf("Failed to create probing table: %v", err)
	}

	for _, t := range []chash.Table{chaining, probing} {
		fmt.Printf("--- %s ---\n", t.Name())

		// Insert some data
		for i := 0; i < 10; i++ {
			t.Insert(i, i*100)
		}
		fmt.Printf("Inserted 10 key-value pairs, capacity is now %d\n", t.Capacity())

		// Retrieve some values, odd keys above 9 are missing
		for i := 0; i < 15; i += 2 {
			if val, found := t.Find(i); found {
				fmt.Printf("Key %d => Value %d\n", i, val)
			} else {
				fmt.Printf("Key %d not found\n", i)
			}
		}

		// Update a value
		t.Insert(2, 999)
		if val, found := t.Find(2); found {
			fmt.Printf("Updated key 2 => Value %d\n", val)
		}

		// Remove a few keys
		for _, k := range []int{3, 4, 42} {
			fmt.Printf("Remove %d => %v\n", k, t.Remove(k))
		}

		t.Display()

		t.Clear()
		fmt.Printf("After clear: size=%d capacity=%d\n\n", t.Size(), t.Capacity())
	}

	fmt.Println("Example completed successfully")
}
