// Command reconcile scans the sensitive store for records whose operational
// twin is gone. The cross-store link is application-level only, so this is
// the compensating check for the non-atomic write and delete paths. Orphans
// are reported, never deleted automatically.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"resume-matcher-backend/internal/resumes"
	"resume-matcher-backend/internal/shared/config"
	"resume-matcher-backend/internal/shared/storage/db"
	"resume-matcher-backend/internal/shared/storage/piidb"
)

func main() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	conn, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
	if err != nil {
		log.Fatalf("connect operational store: %v", err)
	}
	defer conn.Close()

	pii, err := piidb.Open(ctx, cfg.PIIDatabasePath)
	if err != nil {
		log.Fatalf("open sensitive store: %v", err)
	}
	defer pii.Close()

	svc := &resumes.Service{
		Repo:      &resumes.PGRepo{DB: conn},
		Sensitive: &resumes.SQLiteSensitiveRepo{DB: pii},
	}

	orphans, err := svc.ReconcileOrphans(ctx)
	if err != nil {
		log.Fatalf("reconcile: %v", err)
	}

	if len(orphans) == 0 {
		fmt.Println("no orphaned sensitive records")
		return
	}
	for _, o := range orphans {
		fmt.Printf("orphan sensitive record %s (resume_id=%s)\n", o.SensitiveID, o.ResumeID)
	}
	os.Exit(1)
}
