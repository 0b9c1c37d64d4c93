package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"bookcatalog/internal/store"
)

func main() {
	var (
		bookCount  = flag.Int("books", 1000, "Number of books to generate")
		maxReviews = flag.Int("max-reviews", 5, "Maximum reviews per book")
	)
	flag.Parse()

	ctx := context.Background()

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "books.db"
	}

	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := store.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}

	genres := []string{"Fiction", "Science Fiction", "History", "Science", "Technology", "Romance", "Mystery", "Biography", "Philosophy", "Art"}
	users := []string{"alice", "bob", "carol", "dave", "erin", "frank", "grace", "heidi"}

	log.Printf("Generating %d books...", *bookCount)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	insertBook, err := tx.PrepareContext(ctx, `INSERT INTO books (title, author, summary, genre) VALUES (?, ?, ?, ?)`)
	if err != nil {
		log.Fatalf("Failed to prepare book insert: %v", err)
	}
	defer insertBook.Close()

	insertReview, err := tx.PrepareContext(ctx, `INSERT INTO reviews (user, rating, comment, book_id) VALUES (?, ?, ?, ?)`)
	if err != nil {
		log.Fatalf("Failed to prepare review insert: %v", err)
	}
	defer insertReview.Close()

	totalReviews := 0
	for i := 0; i < *bookCount; i++ {
		title := fmt.Sprintf("Book Title %d - %s", i+1, getRandomWord())
		author := fmt.Sprintf("%s %s", getRandomWord(), getRandomWord())
		summary := fmt.Sprintf("This is a book about %s. It explores the fundamental concepts and provides insights into the subject matter.", getRandomWord())
		genre := genres[rand.Intn(len(genres))]

		res, err := insertBook.ExecContext(ctx, title, author, summary, genre)
		if err != nil {
			log.Fatalf("Failed to insert book: %v", err)
		}
		bookID, err := res.LastInsertId()
		if err != nil {
			log.Fatalf("Failed to read book id: %v", err)
		}

		for j := 0; j < rand.Intn(*maxReviews+1); j++ {
			user := users[rand.Intn(len(users))]
			rating := 1 + rand.Intn(5)
			comment := fmt.Sprintf("Thoughts on %s", getRandomWord())
			if _, err := insertReview.ExecContext(ctx, user, rating, comment, bookID); err != nil {
				log.Fatalf("Failed to insert review: %v", err)
			}
			totalReviews++
		}

		if (i+1)%1000 == 0 {
			log.Printf("Generated %d/%d books", i+1, *bookCount)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit: %v", err)
	}

	log.Printf("Successfully inserted %d books and %d reviews!", *bookCount, totalReviews)

	var total int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM books").Scan(&total); err != nil {
		log.Fatalf("Failed to count books: %v", err)
	}
	log.Printf("Total books in database: %d", total)
}

func getRandomWord() string {
	words := []string{
		"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
		"Love", "War", "Peace", "Science", "Nature", "Technology", "History", "Future",
		"Past", "Present", "Reality", "Imagination", "Wisdom", "Life", "Death",
		"Light", "Darkness", "World", "Universe", "Time", "Space", "Mind", "Soul",
	}
	return words[rand.Intn(len(words))]
}
