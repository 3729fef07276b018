package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/freddy-ai/freddy-backend/internal/apperr"
	"github.com/freddy-ai/freddy-backend/internal/repos"
	"github.com/freddy-ai/freddy-backend/internal/types"
)

func TestSendMessageUpdatesCounters(t *testing.T) {
	gdb := testDB(t)
	user, ctx := seedUser(t, gdb)
	convSvc := newConversationService(gdb)
	msgSvc := newMessageService(gdb)

	conv, err := convSvc.Create(ctx, CreateConversationInput{Title: "Practice"})
	if err != nil {
		t.Fatalf("create conversation: %v", err)
	}

	if _, err := msgSvc.Send(ctx, SendMessageInput{ConversationID: conv.ID, Role: types.MessageRoleUser, Content: "hello"}); err != nil {
		t.Fatalf("send user message: %v", err)
	}
	if _, err := msgSvc.Send(ctx, SendMessageInput{ConversationID: conv.ID, Role: types.MessageRoleAssistant, Content: "hi there"}); err != nil {
		t.Fatalf("send assistant message: %v", err)
	}

	got := reloadConversation(t, gdb, conv.ID)
	if got.MessageCount != 2 {
		t.Fatalf("message count: want=2 got=%d", got.MessageCount)
	}
	if got.LastMessageAt == nil || time.Since(*got.LastMessageAt) > time.Minute {
		t.Fatalf("last message at not stamped: %v", got.LastMessageAt)
	}

	// Only user-authored messages count toward the profile total.
	stats := reloadUser(t, gdb, user.ID).Stats.Data()
	if stats.TotalMessages != 1 {
		t.Fatalf("total messages: want=1 got=%d", stats.TotalMessages)
	}
	if stats.TotalConversations != 1 {
		t.Fatalf("total conversations: want=1 got=%d", stats.TotalConversations)
	}
}

func TestSendMessagePersistsSources(t *testing.T) {
	gdb := testDB(t)
	_, ctx := seedUser(t, gdb)
	convSvc := newConversationService(gdb)
	msgSvc := newMessageService(gdb)

	conv, err := convSvc.Create(ctx, CreateConversationInput{Title: "Grounded"})
	if err != nil {
		t.Fatalf("create conversation: %v", err)
	}

	src := types.Source{
		Title:   "Phrasal Verbs",
		Content: "give up means to quit",
		Source:  "vocabulary/phrasal-verbs",
		URL:     "https://kb.example.com/phrasal-verbs",
		Score:   0.9,
		Type:    "article",
	}
	msg, err := msgSvc.Send(ctx, SendMessageInput{
		ConversationID: conv.ID,
		Role:           types.MessageRoleAssistant,
		Content:        "Try: give up.",
		Sources:        []types.Source{src},
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	var stored types.Message
	if err := gdb.First(&stored, "id = ?", msg.ID).Error; err != nil {
		t.Fatalf("reload message: %v", err)
	}
	if len(stored.Sources) != 1 {
		t.Fatalf("sources: want=1 got=%d", len(stored.Sources))
	}
	if got := stored.Sources[0]; got != src {
		t.Fatalf("source round-trip: want=%+v got=%+v", src, got)
	}
}

func TestSendMessageValidation(t *testing.T) {
	gdb := testDB(t)
	_, ctx := seedUser(t, gdb)
	msgSvc := newMessageService(gdb)

	if _, err := msgSvc.Send(ctx, SendMessageInput{ConversationID: uuid.New(), Role: types.MessageRoleUser, Content: ""}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("empty content: want=ErrValidation got=%v", err)
	}
	if _, err := msgSvc.Send(ctx, SendMessageInput{ConversationID: uuid.New(), Role: "moderator", Content: "x"}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("bad role: want=ErrValidation got=%v", err)
	}
	if _, err := msgSvc.Send(ctx, SendMessageInput{ConversationID: uuid.New(), Role: types.MessageRoleUser, Content: "x"}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("missing conversation: want=ErrNotFound got=%v", err)
	}
	if _, err := msgSvc.Send(context.Background(), SendMessageInput{ConversationID: uuid.New(), Role: types.MessageRoleUser, Content: "x"}); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("no caller: want=ErrUnauthorized got=%v", err)
	}
}

func TestSendMessageRejectsForeignConversation(t *testing.T) {
	gdb := testDB(t)
	_, ownerCtx := seedUser(t, gdb)
	_, strangerCtx := seedUser(t, gdb)
	convSvc := newConversationService(gdb)
	msgSvc := newMessageService(gdb)

	conv, err := convSvc.Create(ownerCtx, CreateConversationInput{Title: "Private"})
	if err != nil {
		t.Fatalf("create conversation: %v", err)
	}
	_, err = msgSvc.Send(strangerCtx, SendMessageInput{ConversationID: conv.ID, Role: types.MessageRoleUser, Content: "let me in"})
	if !errors.Is(err, apperr.ErrAccessDenied) {
		t.Fatalf("foreign send: want=ErrAccessDenied got=%v", err)
	}
}

func TestDeleteMessageDecrementsOnce(t *testing.T) {
	gdb := testDB(t)
	user, ctx := seedUser(t, gdb)
	convSvc := newConversationService(gdb)
	msgSvc := newMessageService(gdb)

	conv, err := convSvc.Create(ctx, CreateConversationInput{Title: "Practice"})
	if err != nil {
		t.Fatalf("create conversation: %v", err)
	}
	msg, err := msgSvc.Send(ctx, SendMessageInput{ConversationID: conv.ID, Role: types.MessageRoleUser, Content: "hello"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if err := msgSvc.Delete(ctx, msg.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := reloadConversation(t, gdb, conv.ID); got.MessageCount != 0 {
		t.Fatalf("message count after delete: want=0 got=%d", got.MessageCount)
	}
	if stats := reloadUser(t, gdb, user.ID).Stats.Data(); stats.TotalMessages != 0 {
		t.Fatalf("total messages after delete: want=0 got=%d", stats.TotalMessages)
	}

	// A second delete of the same row is a not-found, not a double decrement.
	if err := msgSvc.Delete(ctx, msg.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("repeat delete: want=ErrNotFound got=%v", err)
	}
}

func TestDeleteMessageCountNeverGoesNegative(t *testing.T) {
	gdb := testDB(t)
	user, ctx := seedUser(t, gdb)
	convSvc := newConversationService(gdb)
	msgSvc := newMessageService(gdb)
	log := testLog()
	msgRepo := repos.NewMessageRepo(gdb, log)

	conv, err := convSvc.Create(ctx, CreateConversationInput{Title: "Practice"})
	if err != nil {
		t.Fatalf("create conversation: %v", err)
	}

	// A row inserted behind the service's back leaves the counter at zero.
	stray := &types.Message{
		ID:             uuid.New(),
		ConversationID: conv.ID,
		UserID:         user.ID,
		Role:           types.MessageRoleAssistant,
		Content:        "imported",
	}
	if err := msgRepo.Create(ctx, nil, stray); err != nil {
		t.Fatalf("insert stray row: %v", err)
	}

	if err := msgSvc.Delete(ctx, stray.ID); err != nil {
		t.Fatalf("delete stray: %v", err)
	}
	if got := reloadConversation(t, gdb, conv.ID); got.MessageCount != 0 {
		t.Fatalf("message count: want=0 got=%d", got.MessageCount)
	}
}

func TestUpdateMetadataMergesAndDeletes(t *testing.T) {
	gdb := testDB(t)
	_, ctx := seedUser(t, gdb)
	convSvc := newConversationService(gdb)
	msgSvc := newMessageService(gdb)

	conv, err := convSvc.Create(ctx, CreateConversationInput{Title: "Practice"})
	if err != nil {
		t.Fatalf("create conversation: %v", err)
	}
	msg, err := msgSvc.Send(ctx, SendMessageInput{
		ConversationID: conv.ID,
		Role:           types.MessageRoleUser,
		Content:        "hello",
		Metadata:       map[string]interface{}{"client": "web", "draft": true},
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	got, err := msgSvc.UpdateMetadata(ctx, msg.ID, map[string]interface{}{"draft": nil, "lang": "en"})
	if err != nil {
		t.Fatalf("update metadata: %v", err)
	}
	if got.Metadata["client"] != "web" {
		t.Fatalf("existing key lost: %v", got.Metadata)
	}
	if got.Metadata["lang"] != "en" {
		t.Fatalf("new key missing: %v", got.Metadata)
	}
	if _, present := got.Metadata["draft"]; present {
		t.Fatalf("nil-valued key should be removed: %v", got.Metadata)
	}
}
