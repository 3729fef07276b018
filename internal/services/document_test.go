package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freddy-ai/freddy-backend/internal/apperr"
	"github.com/freddy-ai/freddy-backend/internal/repos"
	"github.com/freddy-ai/freddy-backend/internal/requestdata"
	"github.com/freddy-ai/freddy-backend/internal/types"
)

type fakeBucket struct {
	objects    map[string][]byte
	failUpload bool
}

func newFakeBucket() *fakeBucket {
	return &fakeBucket{objects: map[string][]byte{}}
}

func (f *fakeBucket) Upload(ctx context.Context, key, contentType string, data []byte) error {
	if f.failUpload {
		return errors.New("bucket unavailable")
	}
	f.objects[key] = data
	return nil
}

func (f *fakeBucket) Delete(ctx context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

func (f *fakeBucket) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

func adminCtx() context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
		UserID: uuid.New(),
		Email:  "admin@example.com",
		Role:   "admin",
	})
}

func newDocumentService(t *testing.T, gdb *gorm.DB, bucket BucketService) (DocumentService, RAGService) {
	t.Helper()
	log := testLog()
	rag := newTestRAG(t)
	return NewDocumentService(repos.NewDocumentRepo(gdb, log), bucket, rag, log), rag
}

func TestDocumentUploadRequiresAdmin(t *testing.T) {
	gdb := testDB(t)
	_, userCtx := seedUser(t, gdb)
	docSvc, _ := newDocumentService(t, gdb, newFakeBucket())

	input := UploadDocumentInput{Title: "Guide", ContentType: "text/plain", Data: []byte("hello")}
	if _, err := docSvc.Upload(context.Background(), input); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("anonymous upload: want=ErrUnauthorized got=%v", err)
	}
	if _, err := docSvc.Upload(userCtx, input); !errors.Is(err, apperr.ErrAccessDenied) {
		t.Fatalf("non-admin upload: want=ErrAccessDenied got=%v", err)
	}
}

func TestDocumentUploadStoresAndIndexes(t *testing.T) {
	gdb := testDB(t)
	bucket := newFakeBucket()
	docSvc, rag := newDocumentService(t, gdb, bucket)
	ctx := adminCtx()

	doc, err := docSvc.Upload(ctx, UploadDocumentInput{
		Title:       "Irregular Verbs Handout",
		ContentType: "application/pdf",
		Data:        []byte("%PDF-fake"),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if doc.SizeBytes != int64(len("%PDF-fake")) {
		t.Fatalf("size: want=%d got=%d", len("%PDF-fake"), doc.SizeBytes)
	}
	if _, stored := bucket.objects[doc.BucketKey]; !stored {
		t.Fatalf("object missing from bucket: %s", doc.BucketKey)
	}

	// The title is searchable through the knowledge base afterwards.
	results, err := rag.Search(ctx, "irregular verbs handout", 1)
	if err != nil || len(results) != 1 {
		t.Fatalf("indexed search: results=%d err=%v", len(results), err)
	}
	if results[0].Source != bucket.PublicURL(doc.BucketKey) {
		t.Fatalf("indexed source: %s", results[0].Source)
	}

	docs, err := docSvc.List(ctx)
	if err != nil || len(docs) != 1 {
		t.Fatalf("list: docs=%d err=%v", len(docs), err)
	}
}

func TestDocumentUploadFailureLeavesNoRow(t *testing.T) {
	gdb := testDB(t)
	bucket := newFakeBucket()
	bucket.failUpload = true
	docSvc, _ := newDocumentService(t, gdb, bucket)

	_, err := docSvc.Upload(adminCtx(), UploadDocumentInput{Title: "Doomed", ContentType: "text/plain", Data: []byte("x")})
	if !errors.Is(err, apperr.ErrExternalService) {
		t.Fatalf("failed upload: want=ErrExternalService got=%v", err)
	}
	var rows int64
	if err := gdb.Model(&types.Document{}).Count(&rows).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if rows != 0 {
		t.Fatalf("no row may exist for a failed upload, got %d", rows)
	}
}

func TestDocumentDelete(t *testing.T) {
	gdb := testDB(t)
	bucket := newFakeBucket()
	docSvc, _ := newDocumentService(t, gdb, bucket)
	ctx := adminCtx()

	doc, err := docSvc.Upload(ctx, UploadDocumentInput{Title: "Temp", ContentType: "text/plain", Data: []byte("x")})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if err := docSvc.Delete(ctx, doc.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, stored := bucket.objects[doc.BucketKey]; stored {
		t.Fatalf("object still in bucket after delete")
	}
	if err := docSvc.Delete(ctx, doc.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("repeat delete: want=ErrNotFound got=%v", err)
	}
}

type countingTalkClient struct {
	fakeVoices []Voice
	listCalls  int
}

func (c *countingTalkClient) CreateTalk(ctx context.Context, req CreateTalkRequest) (*Talk, error) {
	return nil, errors.New("not implemented")
}
func (c *countingTalkClient) GetTalk(ctx context.Context, id string) (*Talk, error) {
	return nil, errors.New("not implemented")
}
func (c *countingTalkClient) ListTalks(ctx context.Context) (*TalkList, error) {
	return nil, errors.New("not implemented")
}
func (c *countingTalkClient) DeleteTalk(ctx context.Context, id string) error {
	return errors.New("not implemented")
}
func (c *countingTalkClient) WaitForTalk(ctx context.Context, id string) (*Talk, error) {
	return nil, errors.New("not implemented")
}
func (c *countingTalkClient) ListVoices(ctx context.Context) ([]Voice, error) {
	c.listCalls++
	return c.fakeVoices, nil
}

func TestVoiceCacheFallsThroughWithoutRedis(t *testing.T) {
	talks := &countingTalkClient{fakeVoices: []Voice{{ID: "en-US-1", Name: "Amber", Language: "en-US"}}}
	cache := &voiceCache{rdb: nil, talks: talks, ttl: 0, log: testLog()}

	for i := 0; i < 2; i++ {
		voices, err := cache.ListVoices(context.Background())
		if err != nil {
			t.Fatalf("list voices: %v", err)
		}
		if len(voices) != 1 || voices[0].ID != "en-US-1" {
			t.Fatalf("voices: %+v", voices)
		}
	}
	// No cache in front means every call reaches the upstream API.
	if talks.listCalls != 2 {
		t.Fatalf("upstream calls: want=2 got=%d", talks.listCalls)
	}
}
