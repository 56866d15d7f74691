package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

const sampleInventory = `{"帽T":{"name":"帽T","category":"衣物","price":500,"styles":{"M":{"center":10},"S":{"center":2}}},"Shirt":{"name":"Shirt","price":300,"styles":{"L":{"center":1}}}}`

func TestInventory_RoundTripPreservesOrder(t *testing.T) {
	inv := NewInventory()
	if err := json.Unmarshal([]byte(sampleInventory), inv); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	wantKeys := []string{"帽T", "Shirt"}
	if !reflect.DeepEqual(inv.Keys(), wantKeys) {
		t.Errorf("keys = %v; want %v", inv.Keys(), wantKeys)
	}

	p, ok := inv.Get("帽T")
	if !ok {
		t.Fatal("product 帽T missing")
	}
	if !reflect.DeepEqual(p.Sizes(), []string{"M", "S"}) {
		t.Errorf("sizes = %v; want [M S]", p.Sizes())
	}

	out, err := inv.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(out) != sampleInventory {
		t.Errorf("round trip changed document:\n got %s\nwant %s", out, sampleInventory)
	}
}

func TestInventory_RoundTripWithoutNameField(t *testing.T) {
	// Minimal entries carry only price and styles; saving must not
	// invent fields the document never had.
	doc := `{"Shirt":{"price":500,"styles":{"M":{"center":10}}}}`
	inv := NewInventory()
	if err := json.Unmarshal([]byte(doc), inv); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	out, err := inv.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(out) != doc {
		t.Errorf("round trip changed document:\n got %s\nwant %s", out, doc)
	}
}

func TestInventory_Values(t *testing.T) {
	inv := NewInventory()
	if err := json.Unmarshal([]byte(sampleInventory), inv); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	p, _ := inv.Get("帽T")
	if p.Price != 500 {
		t.Errorf("price = %d; want 500", p.Price)
	}
	if p.Category != "衣物" {
		t.Errorf("category = %q; want 衣物", p.Category)
	}
	stock, ok := p.Style("M")
	if !ok || stock.Center != 10 {
		t.Errorf("M stock = %+v; want center 10", stock)
	}
	if _, ok := p.Style("XL"); ok {
		t.Error("unexpected size XL")
	}
}

func TestProduct_UnmarshalSkipsUnknownKeys(t *testing.T) {
	var p Product
	doc := `{"name":"杯子","price":150,"note":{"nested":[1,2]},"styles":{"F":{"center":4}}}`
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if p.Name != "杯子" || p.Price != 150 {
		t.Errorf("got %q/%d; want 杯子/150", p.Name, p.Price)
	}
	if stock, ok := p.Style("F"); !ok || stock.Center != 4 {
		t.Errorf("F stock = %+v; want center 4", stock)
	}
}

func TestInventory_SetKeepsFirstSeenOrder(t *testing.T) {
	inv := NewInventory()
	a := &Product{Name: "a", Price: 1}
	b := &Product{Name: "b", Price: 2}
	inv.Set("a", a)
	inv.Set("b", b)
	inv.Set("a", &Product{Name: "a", Price: 9})

	if !reflect.DeepEqual(inv.Keys(), []string{"a", "b"}) {
		t.Errorf("keys = %v; want [a b]", inv.Keys())
	}
	got, _ := inv.Get("a")
	if got.Price != 9 {
		t.Errorf("replaced product price = %d; want 9", got.Price)
	}
}
