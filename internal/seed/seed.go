// Package seed loads the demo dataset and applies it through the same
// validated mutations the admin forms use.
package seed

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Record kinds.
const (
	KindUser    = "user"
	KindProduct = "product"
	KindPost    = "post"
)

// Record is one line of the dataset. Which fields apply depends on Kind.
// Products and posts name their owner by email.
type Record struct {
	Kind string `json:"kind"`

	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role,omitempty"`

	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price,omitempty"`
	Stock       int     `json:"stock,omitempty"`
	Category    string  `json:"category,omitempty"`
	Image       string  `json:"image,omitempty"`

	Title     string `json:"title,omitempty"`
	Content   string `json:"content,omitempty"`
	Published bool   `json:"published,omitempty"`

	Owner string `json:"owner,omitempty"`
}

// Dataset is a decoded seed file, split by kind in file order.
type Dataset struct {
	Users    []Record
	Products []Record
	Posts    []Record
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.Users) + len(d.Products) + len(d.Posts)
}

// Loader reads a dataset from some location.
type Loader interface {
	// Load reads a gzipped JSON-lines dataset.
	Load(ctx context.Context, path string) (*Dataset, error)
}

// decode reads gzipped JSON lines from r. Blank lines are skipped; a line
// that does not parse or names an unknown kind fails the whole load.
func decode(ctx context.Context, r io.Reader) (*Dataset, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gz.Close()

	ds := &Dataset{}

	scanner := bufio.NewScanner(gz)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var rec Record
		if err := json.Unmarshal([]byte(text), &rec); err != nil {
			return nil, fmt.Errorf("line %d: failed to decode record: %w", line, err)
		}

		switch rec.Kind {
		case KindUser:
			ds.Users = append(ds.Users, rec)
		case KindProduct:
			ds.Products = append(ds.Products, rec)
		case KindPost:
			ds.Posts = append(ds.Posts, rec)
		default:
			return nil, fmt.Errorf("line %d: unknown record kind %q", line, rec.Kind)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	return ds, nil
}
