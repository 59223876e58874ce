// Package main provides a tool to seed the content database from a JSON file.
//
// The seed file carries the book and chapter documents the API serves:
//
//	{
//	  "books": [{"book_id": "matthew", "book_name": "Matayo", "total_chapters": 28,
//	             "book_cover": "...", "book_testament": "new"}],
//	  "chapters": [{"book": "matthew", "chapter": 1, "verses": 25,
//	                "length": "20min", "url": "https://youtu.be/84WIaK3bl_s"}]
//	}
//
// Usage:
//
//	DATA_PATH=~/Ubugingo/data go run ./cmd/seed --file content.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ubugingoapp/ubugingo-server/internal/service"
	"github.com/ubugingoapp/ubugingo-server/internal/store"
)

var seedFile = flag.String("file", "content.json", "Path to the JSON seed file")

type seedDocument struct {
	Books    []service.UpsertBookInput `json:"books"`
	Chapters []store.ChapterRecord     `json:"chapters"`
}

func main() {
	flag.Parse()

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/Ubugingo/data")
	}
	dbPath := filepath.Join(dataPath, "db")

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := store.New(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	data, err := os.ReadFile(*seedFile)
	if err != nil {
		log.Fatalf("Failed to read seed file: %v", err)
	}

	var doc seedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Fatalf("Failed to parse seed file: %v", err)
	}

	content := service.NewContentService(s, nil)
	ctx := context.Background()

	for _, book := range doc.Books {
		if err := content.UpsertBook(ctx, book); err != nil {
			log.Fatalf("Failed to upsert book %s: %v", book.ID, err)
		}
	}
	fmt.Printf("Seeded %d books\n", len(doc.Books))

	seeded := 0
	for i := range doc.Chapters {
		if err := content.UpsertChapter(ctx, &doc.Chapters[i]); err != nil {
			log.Fatalf("Failed to upsert %s chapter %d: %v",
				doc.Chapters[i].Book, doc.Chapters[i].Chapter, err)
		}
		seeded++
	}
	fmt.Printf("Seeded %d chapters\n", seeded)
}
