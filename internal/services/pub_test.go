package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestCreatePubReservedSuffix(t *testing.T) {
	repo := &fakePubRepo{}
	svc := NewPubService(repo, testLogger())

	_, err := svc.CreatePub(context.Background(), "my-journal-landingpage", "Sneaky", nil)
	if !errors.Is(err, ErrReservedSlug) {
		t.Fatalf("reserved suffix slug: want=%v got=%v", ErrReservedSlug, err)
	}
	if len(repo.pubs) != 0 {
		t.Fatalf("nothing may be persisted on a reserved slug")
	}

	pub, err := svc.CreatePub(context.Background(), "ordinary-slug", "Fine", nil)
	if err != nil {
		t.Fatalf("CreatePub: %v", err)
	}
	if pub.Slug != "ordinary-slug" {
		t.Fatalf("slug: want=ordinary-slug got=%s", pub.Slug)
	}
}

func TestCreateLandingPage(t *testing.T) {
	repo := &fakePubRepo{}
	svc := NewPubService(repo, testLogger())
	journalID := uuid.New()

	pub, err := svc.CreateLandingPage(context.Background(), "myjournal", "My Journal", journalID)
	if err != nil {
		t.Fatalf("CreateLandingPage: %v", err)
	}
	if pub.Slug != "myjournal-landingpage" {
		t.Fatalf("slug: want=myjournal-landingpage got=%s", pub.Slug)
	}
	if pub.Title != "My Journal Landing Page" {
		t.Fatalf("title: want=%q got=%q", "My Journal Landing Page", pub.Title)
	}
	if !pub.IsJournalPub {
		t.Fatalf("landing page must be a journal pub")
	}
	if pub.JournalID == nil || *pub.JournalID != journalID {
		t.Fatalf("landing page must reference its journal")
	}
}

func TestAddJournalRefs(t *testing.T) {
	repo := &fakePubRepo{}
	svc := NewPubService(repo, testLogger())
	pub, err := svc.CreatePub(context.Background(), "ref-target", "Target", nil)
	if err != nil {
		t.Fatalf("CreatePub: %v", err)
	}
	journalID := uuid.New()
	userID := uuid.New()

	if err := svc.AddJournalSubmitted(context.Background(), pub.ID, journalID, &userID); err != nil {
		t.Fatalf("AddJournalSubmitted: %v", err)
	}
	if err := svc.AddJournalFeatured(context.Background(), pub.ID, journalID, nil); err != nil {
		t.Fatalf("AddJournalFeatured: %v", err)
	}

	stored := repo.get(pub.ID)
	if len(stored.SubmittedTo) != 1 || stored.SubmittedTo[0].JournalID != journalID {
		t.Fatalf("submitted ref: got %v", stored.SubmittedTo)
	}
	if stored.SubmittedTo[0].Date.IsZero() {
		t.Fatalf("submitted ref must carry a date")
	}
	if len(stored.FeaturedIn) != 1 || stored.FeaturedIn[0].ByUserID != nil {
		t.Fatalf("featured ref: got %v", stored.FeaturedIn)
	}
}
