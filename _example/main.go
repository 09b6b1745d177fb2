package main

import (
	"cmp"
	"fmt"
	"log"
	"os"
	"slices"
	"time"

	"github.com/hupe1980/hwt"
	"github.com/hupe1980/hwt/testutil"
)

func main() {
	seed := int64(4711)
	size := 100000
	k := 10

	tree := hwt.New(hwt.WithLeafThreshold(hwt.DefaultLeafThreshold))

	rng := testutil.NewRNG(seed)
	features := rng.Features(size)
	query := rng.Feature()

	fmt.Println("--- Insert ---")
	fmt.Println("Size:", size)

	start := time.Now()

	for _, f := range features {
		tree.Insert(f)
	}

	end := time.Since(start)

	fmt.Printf("Seconds: %.2f\n\n", end.Seconds())

	if _, err := tree.Stats().WriteTo(os.Stdout); err != nil {
		log.Fatal(err)
	}
	fmt.Println()

	fmt.Println("--- KNN ---")

	start = time.Now()

	result := tree.NearestNeighbors(query, k)

	end = time.Since(start)

	printResult(result)

	fmt.Printf("Seconds: %.8f\n\n", end.Seconds())

	fmt.Println("--- Brute ---")

	start = time.Now()

	brute := make([]hwt.Neighbor, len(features))
	for i, f := range features {
		brute[i] = hwt.Neighbor{Feature: f, Distance: hwt.Distance(query, f)}
	}
	slices.SortFunc(brute, func(a, b hwt.Neighbor) int {
		return cmp.Compare(a.Distance, b.Distance)
	})

	end = time.Since(start)

	printResult(brute[:k])

	fmt.Printf("Seconds: %.8f\n\n", end.Seconds())
}

func printResult(result []hwt.Neighbor) {
	for _, r := range result {
		fmt.Printf("Feature: %032x, Distance: %d\n", r.Feature.Big(), r.Distance)
	}
}
