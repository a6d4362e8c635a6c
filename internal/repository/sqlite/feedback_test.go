package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/wellness-tracker/internal/apperror"
	"github.com/sakif/wellness-tracker/internal/model"
)

func TestFeedback_PerUserAndAll(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db)
	bob := createTestUser(t, db)
	ctx := context.Background()

	fromAlice := &model.Feedback{UserID: &alice.ID, Category: "bug", Rating: 2, Message: "chart is empty", Date: at(1, 12)}
	fromBob := &model.Feedback{UserID: &bob.ID, Category: "feature", Rating: 5, Message: "love it", Date: at(3, 12)}
	anonymous := &model.Feedback{Category: "general", Rating: 4, Message: "nice", Date: at(2, 12)}
	for _, f := range []*model.Feedback{fromAlice, fromBob, anonymous} {
		if err := db.CreateFeedback(ctx, f); err != nil {
			t.Fatalf("CreateFeedback() error = %v", err)
		}
	}

	mine, err := db.ListFeedback(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListFeedback() error = %v", err)
	}
	if len(mine) != 1 || mine[0].ID != fromAlice.ID {
		t.Errorf("ListFeedback(alice) = %+v, want only %d", mine, fromAlice.ID)
	}

	all, err := db.ListAllFeedback(ctx)
	if err != nil {
		t.Fatalf("ListAllFeedback() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("ListAllFeedback() returned %d, want 3", len(all))
	}
	wantOrder := []int64{fromBob.ID, anonymous.ID, fromAlice.ID}
	for i, id := range wantOrder {
		if all[i].ID != id {
			t.Errorf("ListAllFeedback()[%d].ID = %d, want %d", i, all[i].ID, id)
		}
	}
	if all[1].UserID != nil {
		t.Errorf("anonymous feedback UserID = %d, want nil", *all[1].UserID)
	}
	if all[0].UserID == nil || *all[0].UserID != bob.ID {
		t.Errorf("UserID = %v, want %d", all[0].UserID, bob.ID)
	}
}

func TestCreateFeedback_UnknownUser(t *testing.T) {
	db := newTestDB(t)
	ghost := int64(321)

	err := db.CreateFeedback(context.Background(), &model.Feedback{UserID: &ghost, Category: "bug", Rating: 1, Message: "x"})

	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("CreateFeedback() error = %v, want ErrNotFound", err)
	}
}
