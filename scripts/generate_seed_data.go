package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"mini-admin/internal/seed"
)

// Writes the demo dataset read by cmd/seed to data/seed.jsonl.gz: two admins,
// three users, a handful of products spread across categories and a few
// posts. Every password is "password".
func main() {
	path := filepath.Join("data", "seed.jsonl.gz")

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	records := []seed.Record{
		{Kind: seed.KindUser, Name: "管理者 太郎", Email: "admin@example.com", Password: "password", Role: "admin"},
		{Kind: seed.KindUser, Name: "管理者 花子", Email: "hanako@example.com", Password: "password", Role: "admin"},
		{Kind: seed.KindUser, Name: "山田 一郎", Email: "ichiro@example.com", Password: "password"},
		{Kind: seed.KindUser, Name: "佐藤 次郎", Email: "jiro@example.com", Password: "password"},
		{Kind: seed.KindUser, Name: "鈴木 三郎", Email: "saburo@example.com", Password: "password"},

		{Kind: seed.KindProduct, Name: "ワークデスク", Description: "幅120cmの木製デスク", Price: 24800, Stock: 5, Category: "furniture", Owner: "admin@example.com"},
		{Kind: seed.KindProduct, Name: "オフィスチェア", Price: 15800, Stock: 12, Category: "furniture", Owner: "admin@example.com"},
		{Kind: seed.KindProduct, Name: "デスクライト", Price: 3980.5, Stock: 30, Category: "lighting", Owner: "hanako@example.com"},
		{Kind: seed.KindProduct, Name: "ノートPCスタンド", Price: 4500, Stock: 0, Category: "accessories", Owner: "ichiro@example.com"},
		{Kind: seed.KindProduct, Name: "USBハブ", Description: "4ポート", Price: 1980, Stock: 48, Category: "accessories", Image: "https://example.com/images/usb-hub.png", Owner: "jiro@example.com"},

		{Kind: seed.KindPost, Title: "新商品のお知らせ", Content: "ワークデスクの取り扱いを開始しました。", Published: true, Owner: "admin@example.com"},
		{Kind: seed.KindPost, Title: "下書き", Owner: "ichiro@example.com"},
	}

	if err := writeDataset(path, records); err != nil {
		log.Fatalf("Failed to create %s: %v", path, err)
	}

	fmt.Printf("Created %s with %d records\n", path, len(records))
	fmt.Println("\nLoad it with: go run ./cmd/seed")
}

func writeDataset(path string, records []seed.Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	enc := json.NewEncoder(gzipWriter)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	return nil
}
