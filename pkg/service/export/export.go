package export

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/model"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/types"
	"github.com/tailkeep-lab/tailkeep/pkg/utils/safe"
)

// Service archives conversation snapshots to a Cloud Storage bucket.
// Reset wipes the durable conversation record, so this keeps a copy for
// owners who want their history back later.
type Service struct {
	client *storage.Client
	bucket string
	now    func() time.Time
}

type Option func(*Service)

// WithClock overrides the time source, for tests
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func New(ctx context.Context, bucket string, opts ...Option) (*Service, error) {
	if bucket == "" {
		return nil, goerr.New("export bucket is required")
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client", goerr.V("bucket", bucket))
	}

	s := &Service{
		client: client,
		bucket: bucket,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

type snapshot struct {
	ProfileID  string                  `json:"profile_id"`
	ExportedAt time.Time               `json:"exported_at"`
	Messages   []model.ArchivedMessage `json:"messages"`
}

// Archive writes the conversation snapshot as a JSON object named by
// profile and timestamp. Returns the object name on success.
func (s *Service) Archive(ctx context.Context, profileID types.ProfileID, msgs []model.ArchivedMessage) (string, error) {
	name := fmt.Sprintf("conversations/%s/%s.json", profileID.String(), s.now().UTC().Format("20060102T150405Z"))

	data, err := json.Marshal(&snapshot{
		ProfileID:  profileID.String(),
		ExportedAt: s.now().UTC(),
		Messages:   msgs,
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to marshal conversation snapshot",
			goerr.V("profile_id", profileID))
	}

	w := s.client.Bucket(s.bucket).Object(name).NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(data); err != nil {
		safe.Close(ctx, w)
		return "", goerr.Wrap(err, "failed to write conversation snapshot",
			goerr.V("bucket", s.bucket), goerr.V("object", name))
	}
	if err := w.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to finalize conversation snapshot",
			goerr.V("bucket", s.bucket), goerr.V("object", name))
	}

	return name, nil
}

func (s *Service) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}
