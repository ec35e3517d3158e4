package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/lacreme/bakery-backend/config"
	"github.com/lacreme/bakery-backend/internal/app/model"
	"github.com/lacreme/bakery-backend/internal/app/repository"
	"github.com/lacreme/bakery-backend/internal/db"
	"github.com/lacreme/bakery-backend/pkg/util"
	"gorm.io/gorm"
)

// seed는 XLSX 카탈로그(bakeries, products 시트)로 사장님 계정, 매장, 상품을 만든다
func main() {
	password := flag.String("password", "bakery1234", "initial password for created baker accounts")
	printTokens := flag.Bool("tokens", false, "print an access token for every baker")
	yes := flag.Bool("y", false, "skip confirmation")
	flag.Parse()

	if flag.NArg() < 1 {
		log.Fatal("Usage: go run cmd/seed/main.go [-tokens] [-y] <xlsx_file_path>")
	}
	filePath := flag.Arg(0)

	// 설정 로드
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// XLSX 파일 읽기
	fmt.Printf("Reading XLSX file: %s\n", filePath)
	catalog, err := readCatalog(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Bakeries to import: %d\n", len(catalog.Bakeries))
	fmt.Printf("Products to import: %d\n", catalog.productCount())
	fmt.Printf("Skipped rows: %d\n", catalog.Skipped)

	if !*yes {
		fmt.Print("Do you want to proceed with the import? (yes/no): ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "yes" && confirm != "y" {
			fmt.Println("Import cancelled.")
			return
		}
	}

	// DB 연결
	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	hash, err := util.HashPassword(*password)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	owners, err := importCatalog(context.Background(), db.GetDB(), catalog, hash)
	if err != nil {
		log.Fatal("Import failed:", err)
	}

	fmt.Println("Import completed successfully!")

	if *printTokens {
		for _, owner := range owners {
			token, err := util.GenerateToken(owner.ID, owner.Email, string(owner.Role), cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
			if err != nil {
				log.Fatal("Failed to generate token:", err)
			}
			fmt.Fprintf(os.Stdout, "%s\t%s\n", owner.Email, token)
		}
	}
}

// importCatalog 매장별로 하나의 트랜잭션. 이미 있는 이메일의 매장은 건너뛴다
func importCatalog(ctx context.Context, database *gorm.DB, catalog *Catalog, passwordHash string) ([]model.User, error) {
	var owners []model.User

	for _, row := range catalog.Bakeries {
		existing, err := repository.NewUserRepository(database).FindByEmail(ctx, row.OwnerEmail)
		if err == nil {
			fmt.Printf("  skip %s: owner %s already exists\n", row.Bakery.Slug, existing.Email)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return owners, err
		}

		owner := model.User{
			Email:        row.OwnerEmail,
			PasswordHash: passwordHash,
			Name:         row.OwnerName,
			Role:         model.RoleBaker,
			IsActive:     true,
		}

		err = database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := repository.NewUserRepository(tx).Create(ctx, &owner); err != nil {
				return err
			}

			bakery := row.Bakery
			bakery.OwnerID = owner.ID
			if err := repository.NewBakeryRepository(tx).Create(ctx, &bakery); err != nil {
				return err
			}

			products := repository.NewProductRepository(tx)
			for _, p := range catalog.Products[row.Bakery.Slug] {
				p.BakeryID = bakery.ID
				if err := products.Create(ctx, &p); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return owners, fmt.Errorf("import %s: %w", row.Bakery.Slug, err)
		}

		fmt.Printf("  imported %s (%d products)\n", row.Bakery.Slug, len(catalog.Products[row.Bakery.Slug]))
		owners = append(owners, owner)
	}
	return owners, nil
}
