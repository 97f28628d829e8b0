// Command paperscope-grant mints access tokens and stores their hashes
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"paperscope/internal/core/datescope"
	"paperscope/internal/platform/config"
	"paperscope/internal/platform/store"

	accesssvc "paperscope/internal/services/api/access/service"
	papersrepo "paperscope/internal/services/api/papers/repo"
)

func must(err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// datesJSON turns the comma separated flag value into the stored JSON list,
// validating every entry on the way
func datesJSON(raw string) (string, error) {
	var entries []string
	for _, e := range strings.Split(raw, ",") {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		entries = append(entries, e)
	}
	if len(entries) == 0 {
		return "", fmt.Errorf("no date entries in %q", raw)
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return "", err
	}
	if _, err := datescope.ParseList(string(b)); err != nil {
		return "", err
	}
	return string(b), nil
}

func main() {
	var (
		name       = flag.String("name", "", "label for the grant holder (required)")
		email      = flag.String("email", "", "email for the grant holder")
		notes      = flag.String("notes", "", "free-form notes stored with the grant")
		expires    = flag.Int("expires", 90, "days until expiry; 0 means never")
		dates      = flag.String("dates", "*", "comma separated accessible dates: YYYY-MM-DD, start:end ranges, or *")
		dburl      = flag.String("dburl", "", "postgres url; falls back to SERVICE_PGSQL_DBURL")
		initSchema = flag.Bool("init-schema", false, "apply the schema before inserting")
	)
	flag.Parse()

	if *name == "" {
		_, _ = fmt.Fprintln(os.Stderr, "error: -name is required")
		flag.Usage()
		os.Exit(2)
	}

	url := *dburl
	if url == "" {
		url = config.New().Prefix("SERVICE_PGSQL_").MustString("DBURL")
	}

	accessible, err := datesJSON(*dates)
	must(err)

	ctx := context.Background()
	st, err := store.Open(ctx, store.Config{
		AppName: "paperscope-grant",
		PG:      store.PGConfig{Enabled: true, URL: url},
	})
	must(err)
	defer func() { _ = st.Close(ctx) }()

	if *initSchema {
		_, err := st.PG.Exec(ctx, papersrepo.SchemaDDL)
		must(err)
	}

	raw := make([]byte, 32)
	_, err = rand.Read(raw)
	must(err)
	token := hex.EncodeToString(raw)

	var expiresAt *time.Time
	if *expires > 0 {
		t := time.Now().UTC().AddDate(0, 0, *expires)
		expiresAt = &t
	}

	id := uuid.NewString()
	_, err = st.PG.Exec(ctx, `
		insert into access_keys (id, key_hash, user_name, user_email, accessible_dates, expires_at, notes)
		values ($1::uuid, $2, $3, nullif($4, ''), $5, $6, nullif($7, ''))`,
		id, accesssvc.HashToken(token), *name, *email, accessible, expiresAt, *notes,
	)
	must(err)

	rule := strings.Repeat("=", 70)
	fmt.Println()
	fmt.Println(rule)
	fmt.Println("Access token created")
	fmt.Println(rule)
	fmt.Printf("Token ID:  %s\n", id)
	fmt.Printf("Name:      %s\n", *name)
	if *email != "" {
		fmt.Printf("Email:     %s\n", *email)
	}
	fmt.Printf("Dates:     %s\n", accessible)
	if expiresAt != nil {
		fmt.Printf("Expires:   %s (%d days)\n", expiresAt.Format("2006-01-02"), *expires)
	} else {
		fmt.Println("Expires:   never")
	}
	if *notes != "" {
		fmt.Printf("Notes:     %s\n", *notes)
	}
	fmt.Println(rule)
	fmt.Println("TOKEN (shown once, share with the holder):")
	fmt.Println(rule)
	fmt.Printf("\n%s\n\n", token)
	fmt.Println(rule)
}
