// Package models defines the core data structures for staff, inventory,
// sessions, and recorded transactions.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Staff represents one entry of the staff file, keyed by account.
type Staff struct {
	// Password is the plaintext password of the account.
	Password string `json:"password"`
	// Name is the display name shown in pages and log lines.
	Name string `json:"name"`
}

// Session identifies the logged-in staff member for one browser.
type Session struct {
	// Account is the staff account the session was issued for.
	Account string
	// Name is the display name carried alongside the account.
	Name string
}

// LineItem is one product/size/quantity triple of a transaction request.
type LineItem struct {
	Name string `json:"name"`
	Size string `json:"size"`
	Qty  int    `json:"qty"`
}

// StyleStock holds the stock counter of one size. "center" is the only
// stock location the data models.
type StyleStock struct {
	Center int `json:"center"`
}

// RecordKind identifies the type of a ledger record.
type RecordKind string

const (
	// KindSale is a paid sale.
	KindSale RecordKind = "sale"
	// KindGift is a giveaway with no price computation.
	KindGift RecordKind = "gift"
	// KindReturn is a return of previously sold goods.
	KindReturn RecordKind = "return"
	// KindExchange swaps returned goods for new ones.
	KindExchange RecordKind = "exchange"
)

// Record is one structured ledger entry. Fields that do not apply to a
// kind stay empty (Giver outside gifts, OrderID outside sales and
// exchanges, and so on).
type Record struct {
	ID       string     `json:"id"`
	Kind     RecordKind `json:"kind"`
	Time     time.Time  `json:"time"`
	Staff    string     `json:"staff"`
	Identity string     `json:"identity,omitempty"`
	Channel  string     `json:"channel,omitempty"`
	OrderID  string     `json:"order_id,omitempty"`
	Giver    string     `json:"giver,omitempty"`
	// Amount is the sale total, the (positive) refund total of a return,
	// or the price difference of an exchange. Zero for gifts.
	Amount int `json:"amount"`
	// Items are the goods sold, gifted, or returned.
	Items []LineItem `json:"items,omitempty"`
	// OldItems/NewItems are only set on exchanges.
	OldItems []LineItem `json:"old_items,omitempty"`
	NewItems []LineItem `json:"new_items,omitempty"`
}

// ReturnBlock is one group of the returns view: the transaction timestamp
// plus its items, quantities positive.
type ReturnBlock struct {
	Time  string     `json:"time"`
	Items []LineItem `json:"items"`
}

// Product is one inventory entry. Size order is preserved across
// load/save because the size list doubles as the display order of the
// front end.
type Product struct {
	// Name is the display name; usually equal to the inventory key.
	Name string
	// Category groups products on the sale page; optional.
	Category string
	// Price is the unit price in whole dollars.
	Price int

	sizes  []string
	styles map[string]*StyleStock
}

// Sizes returns the product's sizes in file order.
func (p *Product) Sizes() []string {
	return p.sizes
}

// Style returns the stock entry of size, or false if the product has no
// such size.
func (p *Product) Style(size string) (*StyleStock, bool) {
	s, ok := p.styles[size]
	return s, ok
}

// SetStyle adds or replaces the stock entry of size, keeping first-seen
// size order.
func (p *Product) SetStyle(size string, stock *StyleStock) {
	if p.styles == nil {
		p.styles = make(map[string]*StyleStock)
	}
	if _, ok := p.styles[size]; !ok {
		p.sizes = append(p.sizes, size)
	}
	p.styles[size] = stock
}

// MarshalJSON writes the product with its sizes in preserved order.
func (p *Product) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	writeField := func(key string, v any) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		val, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(val)
		return nil
	}
	if p.Name != "" {
		if err := writeField("name", p.Name); err != nil {
			return nil, err
		}
	}
	if p.Category != "" {
		if err := writeField("category", p.Category); err != nil {
			return nil, err
		}
	}
	if err := writeField("price", p.Price); err != nil {
		return nil, err
	}
	buf.WriteString(`,"styles":{`)
	for i, size := range p.sizes {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(size)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(p.styles[size])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteString("}}")
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a product object, recording size order as it
// appears in the document. Unknown keys are skipped.
func (p *Product) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	p.sizes = nil
	p.styles = make(map[string]*StyleStock)
	for dec.More() {
		key, err := stringToken(dec)
		if err != nil {
			return err
		}
		switch key {
		case "name":
			if err := dec.Decode(&p.Name); err != nil {
				return err
			}
		case "category":
			if err := dec.Decode(&p.Category); err != nil {
				return err
			}
		case "price":
			if err := dec.Decode(&p.Price); err != nil {
				return err
			}
		case "styles":
			if err := expectDelim(dec, '{'); err != nil {
				return err
			}
			for dec.More() {
				size, err := stringToken(dec)
				if err != nil {
					return err
				}
				var stock StyleStock
				if err := dec.Decode(&stock); err != nil {
					return err
				}
				p.SetStyle(size, &stock)
			}
			if _, err := dec.Token(); err != nil {
				return err
			}
		default:
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return err
			}
		}
	}
	_, err := dec.Token()
	return err
}

// Inventory is the full product mapping with file key order preserved,
// mirroring the on-disk JSON document.
type Inventory struct {
	keys     []string
	products map[string]*Product
}

// NewInventory returns an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{products: make(map[string]*Product)}
}

// Keys returns the product keys in file order.
func (inv *Inventory) Keys() []string {
	return inv.keys
}

// Len returns the number of products.
func (inv *Inventory) Len() int {
	return len(inv.keys)
}

// Get returns the product stored under key, or false if absent.
func (inv *Inventory) Get(key string) (*Product, bool) {
	p, ok := inv.products[key]
	return p, ok
}

// Set adds or replaces the product under key, keeping first-seen order.
func (inv *Inventory) Set(key string, p *Product) {
	if inv.products == nil {
		inv.products = make(map[string]*Product)
	}
	if _, ok := inv.products[key]; !ok {
		inv.keys = append(inv.keys, key)
	}
	inv.products[key] = p
}

// MarshalJSON writes the inventory object with keys in preserved order.
func (inv *Inventory) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range inv.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		val, err := inv.products[key].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads the inventory object, recording key order as it
// appears in the document.
func (inv *Inventory) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	inv.keys = nil
	inv.products = make(map[string]*Product)
	for dec.More() {
		key, err := stringToken(dec)
		if err != nil {
			return err
		}
		var p Product
		if err := dec.Decode(&p); err != nil {
			return err
		}
		inv.Set(key, &p)
	}
	_, err := dec.Token()
	return err
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func stringToken(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	s, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return s, nil
}
