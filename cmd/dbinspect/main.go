// Package main prints a read-only summary of a Pantry badger data directory.
//
// Usage:
//
//	DATA_PATH=~/Pantry/data go run ./cmd/dbinspect
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/listenupapp/pantry/internal/domain"
	"github.com/listenupapp/pantry/internal/store"
)

func main() {
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/Pantry/data")
	}
	dbPath := filepath.Join(dataPath, "badger")

	fmt.Println("=== Key Namespaces ===")
	if err := printNamespaces(dbPath); err != nil {
		log.Fatalf("Failed to scan database: %v", err)
	}
	fmt.Println()

	s, err := store.NewReadOnly(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	drafts := store.NewDrafts(s, slog.New(slog.DiscardHandler), store.Options{})

	listers := map[domain.Kind]func(context.Context) ([]domain.DraftMeta, error){
		domain.KindMealPlan:    drafts.GetMealPlanDrafts,
		domain.KindGroceryList: drafts.GetGroceryListDrafts,
	}

	for _, kind := range domain.Kinds {
		metas, err := listers[kind](ctx)
		if err != nil {
			log.Printf("Error listing %s drafts: %v", kind, err)
			continue
		}
		fmt.Printf("=== %s drafts (%d) ===\n", kind.Label(), len(metas))
		for i, m := range metas {
			if i == 10 {
				fmt.Printf("  ... and %d more\n", len(metas)-10)
				break
			}
			fmt.Printf("  %-24s %-32q updated %s\n", m.ID, m.Name, m.UpdatedAt.Format("2006-01-02 15:04"))
		}
		fmt.Println()
	}

	stats, err := drafts.GetStorageStats(ctx)
	if err != nil {
		log.Fatalf("Error computing stats: %v", err)
	}

	fmt.Println("=== Summary ===")
	for _, kind := range domain.Kinds {
		fmt.Printf("%s drafts: %d\n", kind.Label(), stats.DraftCounts[kind])
	}
	fmt.Printf("Unreadable drafts: %d\n", stats.Unreadable)
	fmt.Printf("Approximate size: %d bytes\n", stats.ApproximateTotalBytes)
}

// printNamespaces counts keys by their leading segments directly from badger.
func printNamespaces(dbPath string) error {
	opts := badger.DefaultOptions(dbPath).
		WithReadOnly(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return err
	}
	defer db.Close()

	counts := make(map[string]int)
	sizes := make(map[string]int64)

	err = db.View(func(txn *badger.Txn) error {
		iopts := badger.DefaultIteratorOptions
		iopts.PrefetchValues = false
		it := txn.NewIterator(iopts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			ns := namespace(string(item.Key()))
			counts[ns]++
			sizes[ns] += item.ValueSize()
		}
		return nil
	})
	if err != nil {
		return err
	}

	names := make([]string, 0, len(counts))
	for ns := range counts {
		names = append(names, ns)
	}
	sort.Strings(names)

	for _, ns := range names {
		fmt.Printf("  %-24s %6d keys %10d bytes\n", ns, counts[ns], sizes[ns])
	}
	return nil
}

// namespace groups draft keys by kind and recipe keys together. Index keys stand alone.
func namespace(key string) string {
	parts := strings.SplitN(key, ":", 3)
	switch {
	case parts[0] == "idx":
		return key
	case len(parts) == 3 && parts[0] == "draft":
		return parts[0] + ":" + parts[1]
	default:
		return parts[0]
	}
}
