package firestore

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"

	"github.com/lromero86/tacopos-api/internal/config"
)

// NewClient creates the Firestore client backing all till persistence.
// A credentials file is only needed for local development; on GCP the
// ambient service account is used.
func NewClient(ctx context.Context, cfg *config.FirestoreConfig) (*firestore.Client, error) {
	projectID := strings.TrimSpace(cfg.ProjectID)
	if projectID == "" {
		return nil, errors.New("firestore: project id is empty (set FIRESTORE_PROJECT_ID)")
	}

	var opts []option.ClientOption
	if credFile := strings.TrimSpace(cfg.CredentialsFile); credFile != "" {
		opts = append(opts, option.WithCredentialsFile(credFile))
	}

	return firestore.NewClient(ctx, projectID, opts...)
}
