package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"resume-builder/internal/domain"
	"resume-builder/internal/logging"
	"resume-builder/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ResumeService is the persistence gateway: every read and write of a
// résumé goes through it, validated against the schema and scoped to the
// calling user.
type ResumeService struct {
	repo ResumeRepository
	log  *zap.Logger
	now  func() time.Time
}

func NewResumeService(repo ResumeRepository, log *zap.Logger) *ResumeService {
	return &ResumeService{repo: repo, log: logging.OrNop(log), now: time.Now}
}

// Create validates raw as a whole document and stores it under owner.
func (s *ResumeService) Create(ctx context.Context, owner uuid.UUID, raw []byte) (domain.Resume, error) {
	m, err := decodeObject(raw)
	if err != nil {
		return domain.Resume{}, err
	}
	if err := model.ValidateCreate(m); err != nil {
		return domain.Resume{}, err
	}
	var content domain.ResumeContent
	if err := json.Unmarshal(raw, &content); err != nil {
		return domain.Resume{}, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}

	content = sanitizeContent(content)
	if err := checkTitle(content.Title); err != nil {
		return domain.Resume{}, err
	}

	now := s.now().UTC()
	r := domain.Resume{
		ID:            uuid.New(),
		UserID:        owner,
		ResumeContent: content,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Insert(ctx, r); err != nil {
		return domain.Resume{}, fmt.Errorf("insert resume: %w", err)
	}
	s.log.Info("resume created",
		zap.String("resume_id", r.ID.String()),
		zap.String("user_id", owner.String()),
		zap.String("template", r.Template))
	return r, nil
}

func (s *ResumeService) Get(ctx context.Context, owner uuid.UUID, id string) (domain.Resume, error) {
	rid, err := parseID(id)
	if err != nil {
		return domain.Resume{}, err
	}
	return s.repo.Get(ctx, owner, rid)
}

func (s *ResumeService) List(ctx context.Context, owner uuid.UUID) ([]domain.Resume, error) {
	list, err := s.repo.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []domain.Resume{}
	}
	return list, nil
}

// Update applies only the fields present in raw. An empty object changes
// nothing and returns the stored document.
func (s *ResumeService) Update(ctx context.Context, owner uuid.UUID, id string, raw []byte) (domain.Resume, error) {
	rid, err := parseID(id)
	if err != nil {
		return domain.Resume{}, err
	}
	m, err := decodeObject(raw)
	if err != nil {
		return domain.Resume{}, err
	}
	// server-assigned fields are ignored rather than rejected so clients
	// can send back what they read
	for _, k := range []string{"id", "_id", "userId", "createdAt", "updatedAt"} {
		delete(m, k)
	}
	if err := model.ValidatePatch(m); err != nil {
		return domain.Resume{}, err
	}
	var patch domain.ResumePatch
	if err := json.Unmarshal(raw, &patch); err != nil {
		return domain.Resume{}, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}
	if patch.Empty() {
		return s.repo.Get(ctx, owner, rid)
	}
	sanitizePatch(&patch)
	if patch.Title != nil {
		if err := checkTitle(*patch.Title); err != nil {
			return domain.Resume{}, err
		}
	}

	r, err := s.repo.Update(ctx, owner, rid, patch, s.now().UTC())
	if err != nil {
		return domain.Resume{}, err
	}
	s.log.Info("resume updated",
		zap.String("resume_id", rid.String()),
		zap.String("user_id", owner.String()),
		zap.Strings("fields", patch.Fields()))
	return r, nil
}

func (s *ResumeService) Delete(ctx context.Context, owner uuid.UUID, id string) error {
	rid, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, owner, rid); err != nil {
		return err
	}
	s.log.Info("resume deleted",
		zap.String("resume_id", rid.String()),
		zap.String("user_id", owner.String()))
	return nil
}

func parseID(id string) (uuid.UUID, error) {
	rid, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", domain.ErrInvalidID, id)
	}
	return rid, nil
}

// decodeObject accepts only a JSON object. Numbers stay json.Number so the
// schema can tell 3 from 3.5.
func decodeObject(raw []byte) (map[string]interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var m map[string]interface{}
	if err := dec.Decode(&m); err != nil || m == nil {
		return nil, fmt.Errorf("%w: body must be a JSON object", domain.ErrInvalidPayload)
	}
	return m, nil
}

// DecodeDocument validates and decodes a document that is not being saved,
// e.g. one sent for export. The title is optional here.
func DecodeDocument(raw []byte) (domain.ResumeContent, error) {
	m, err := decodeObject(raw)
	if err != nil {
		return domain.ResumeContent{}, err
	}
	if err := model.ValidatePatch(m); err != nil {
		return domain.ResumeContent{}, err
	}
	var content domain.ResumeContent
	if err := json.Unmarshal(raw, &content); err != nil {
		return domain.ResumeContent{}, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}
	return sanitizeContent(content), nil
}
