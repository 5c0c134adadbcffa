package workflow

import (
	"context"
	"testing"
	"time"
)

// NOTE: DB-free. An empty store list resolves no candidates before any query
// runs, which lets the list-shaping rules be exercised in isolation.

func TestOptimizeShoppingList_SkipsBlankItems(t *testing.T) {
	request := &OptimizeRequest{
		Items: []OptimizeItemInput{
			{Name: "", Quantity: "1"},
			{Name: "   ", Quantity: "2L"},
			{Name: "\t"},
		},
		Stores: []string{},
	}

	results, err := OptimizeShoppingList(context.Background(), request, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Fatalf("blank items must not appear in the response, got %d rows", len(results))
	}
}

func TestOptimizeShoppingList_KeepsNamedItemsWithoutDeals(t *testing.T) {
	request := &OptimizeRequest{
		Items: []OptimizeItemInput{
			{Name: "  ", Quantity: "1"},
			{Name: "lait", Quantity: "2L"},
		},
		Stores: []string{},
	}

	results, err := OptimizeShoppingList(context.Background(), request, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("expected only the named item, got %d rows", len(results))
	}
	item := results[0]
	if item.Name != "lait" || item.Quantity != "2L" {
		t.Fatalf("unexpected item row: %+v", item)
	}
	if len(item.Deals) != 0 {
		t.Fatalf("no stores selected, expected no deals, got %d", len(item.Deals))
	}
	if item.SelectedDeal != nil || item.SelectedPrice != "" {
		t.Fatalf("selection fields belong to the client, got %+v", item)
	}
}

func TestOptimizeShoppingList_EmptyList(t *testing.T) {
	request := &OptimizeRequest{Items: []OptimizeItemInput{}, Stores: []string{}}

	results, err := OptimizeShoppingList(context.Background(), request, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Fatalf("empty list must yield an empty result, got %d rows", len(results))
	}
}
