// app/bootstrap.go
package app

import (
	"context"
	"log"
	"time"

	"Gin_postgres_redis_library_lending/db"
	"Gin_postgres_redis_library_lending/models"

	"github.com/google/uuid"
)

// SeedSampleData loads a starter catalog and staff roster into an empty
// database so a fresh install is usable immediately. A non-empty books table
// means a real deployment, so it does nothing.
func SeedSampleData(ctx context.Context, repo *db.Repo) {
	books, err := repo.Books.FindAll(ctx)
	if err != nil {
		log.Printf("seed: list books failed: %v", err)
		return
	}
	if len(books) > 0 {
		return
	}

	now := time.Now()
	sampleBooks := []models.Book{
		{Title: "リーダブルコード", Author: "Dustin Boswell", ISBN: "9784873115658"},
		{Title: "プログラマが知るべき97のこと", Author: "和田卓人", ISBN: "9784873114798"},
		{Title: "リファクタリング（第2版）", Author: "Martin Fowler", ISBN: "9784274224546"},
		{Title: "Clean Code", Author: "Robert C. Martin", ISBN: "9784048930598"},
		{Title: "プログラミングTypeScript", Author: "Boris Cherny", ISBN: "9784873119045"},
	}
	for i := range sampleBooks {
		b := sampleBooks[i]
		b.ID = uuid.NewString()
		b.Status = models.BookStatusAvailable
		b.RegisteredAt = now
		if err := repo.Books.Create(ctx, &b); err != nil {
			log.Printf("seed: create book %q failed: %v", b.Title, err)
		}
	}

	sampleEmployees := []models.Employee{
		{ID: "EMP001", Name: "山田太郎", Email: "yamada@company.com"},
		{ID: "EMP002", Name: "佐藤花子", Email: "sato@company.com"},
		{ID: "EMP003", Name: "田中一郎", Email: "tanaka@company.com"},
	}
	for i := range sampleEmployees {
		e := sampleEmployees[i]
		e.Barcode = e.ID
		e.RegisteredAt = now
		if err := repo.Employees.Create(ctx, &e); err != nil {
			log.Printf("seed: create employee %s failed: %v", e.ID, err)
		}
	}

	log.Printf("seed: loaded %d books and %d employees", len(sampleBooks), len(sampleEmployees))
}
