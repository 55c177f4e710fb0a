package main

import (
	"database/sql"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	godotenv.Load()

	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ddl := `
	CREATE TABLE IF NOT EXISTS sections (
	  slug VARCHAR(64) NOT NULL,
	  title VARCHAR(255) NOT NULL,
	  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	  PRIMARY KEY (slug)
	);

	CREATE TABLE IF NOT EXISTS section_cards (
	  id CHAR(32) NOT NULL,
	  section_slug VARCHAR(64) NOT NULL,
	  brand VARCHAR(255) NOT NULL DEFAULT '',
	  title VARCHAR(255) NOT NULL DEFAULT '',
	  descr TEXT NOT NULL DEFAULT '',
	  img TEXT NOT NULL DEFAULT '',
	  visible BOOLEAN NOT NULL DEFAULT TRUE,
	  category VARCHAR(64) NOT NULL DEFAULT 'ALL',
	  unit VARCHAR(64) NOT NULL DEFAULT '1 UNIT',
	  price NUMERIC(10,2) NOT NULL DEFAULT 0,
	  rating NUMERIC(3,1) NOT NULL DEFAULT 0,
	  discount INT NOT NULL DEFAULT 0,
	  sort_order INT NOT NULL DEFAULT 1,
	  stock INT NOT NULL DEFAULT 0,
	  orders_count INT NOT NULL DEFAULT 0,
	  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	  PRIMARY KEY (id),
	  CONSTRAINT fk_section_cards_section FOREIGN KEY (section_slug)
	    REFERENCES sections(slug) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS ix_section_cards_slug_order
	  ON section_cards (section_slug, sort_order);

	CREATE TABLE IF NOT EXISTS blog_section (
	  id INT NOT NULL,
	  title VARCHAR(255) NOT NULL,
	  cta_text VARCHAR(255) NOT NULL,
	  cta_href TEXT NOT NULL,
	  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	  PRIMARY KEY (id)
	);

	CREATE TABLE IF NOT EXISTS blog_posts (
	  id CHAR(32) NOT NULL,
	  title VARCHAR(255) NOT NULL DEFAULT '',
	  date VARCHAR(64) NOT NULL DEFAULT '',
	  tag VARCHAR(64) NOT NULL DEFAULT '',
	  excerpt TEXT NOT NULL DEFAULT '',
	  image TEXT NOT NULL DEFAULT '',
	  visible BOOLEAN NOT NULL DEFAULT TRUE,
	  sort_order INT NOT NULL DEFAULT 1,
	  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	  PRIMARY KEY (id)
	);

	CREATE TABLE IF NOT EXISTS order_records (
	  id CHAR(32) NOT NULL,
	  product_id VARCHAR(64) NOT NULL DEFAULT '',
	  title VARCHAR(255) NOT NULL DEFAULT '',
	  brand VARCHAR(255) NOT NULL DEFAULT '',
	  unit VARCHAR(64) NOT NULL DEFAULT '',
	  price NUMERIC(10,2) NOT NULL DEFAULT 0,
	  qty INT NOT NULL DEFAULT 1,
	  subtotal NUMERIC(10,2) NOT NULL DEFAULT 0,
	  category VARCHAR(64) NOT NULL DEFAULT '',
	  discount INT NOT NULL DEFAULT 0,
	  created_at VARCHAR(64) NOT NULL DEFAULT '',
	  PRIMARY KEY (id)
	);
	`

	if _, err := db.Exec(ddl); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	log.Println("✓ sections and section_cards tables created successfully")
	log.Println("✓ blog_section and blog_posts tables created successfully")
	log.Println("✓ order_records table created successfully")
}
