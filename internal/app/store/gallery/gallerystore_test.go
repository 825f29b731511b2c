package gallerystore_test

import (
	"errors"
	"testing"
	"time"

	gallerystore "github.com/dalemusser/auxilium/internal/app/store/gallery"
	"github.com/dalemusser/auxilium/internal/app/store/storekit"
	"github.com/dalemusser/auxilium/internal/domain/models"
	"github.com/dalemusser/auxilium/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_ListFiltersByType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := gallerystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	base := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	items := []models.GalleryItem{
		{Type: models.GalleryPhoto, Title: "Sports Day", UploadDate: base},
		{Type: models.GalleryVideo, Title: "Annual Day", UploadDate: base.Add(time.Hour)},
		{Type: models.GalleryPhoto, Title: "Science Fair", UploadDate: base.Add(2 * time.Hour)},
	}
	for _, it := range items {
		if _, err := store.Create(ctx, it); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	all, err := store.List(ctx, "")
	if err != nil || len(all) != 3 || all[0].Title != "Science Fair" {
		t.Fatalf("List all = %+v, %v", all, err)
	}
	photos, err := store.List(ctx, models.GalleryPhoto)
	if err != nil || len(photos) != 2 {
		t.Fatalf("List photos = %d, %v", len(photos), err)
	}
}

func TestStore_UpdateTextAndDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := gallerystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	it, err := store.Create(ctx, models.GalleryItem{
		Type:  models.GalleryPhoto,
		Title: "Old",
		Photo: models.Photo{CloudinaryURL: "https://media.test/a", CloudinaryPublicID: "gallery/photo/a"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := store.UpdateText(ctx, it.ID, "New", "")
	if err != nil {
		t.Fatalf("UpdateText: %v", err)
	}
	if updated.Title != "New" || updated.Description != "" || updated.CloudinaryPublicID != "gallery/photo/a" {
		t.Errorf("updated = %+v", updated)
	}

	if _, err := store.UpdateText(ctx, primitive.NewObjectID(), "x", ""); !errors.Is(err, storekit.ErrNotFound) {
		t.Errorf("UpdateText missing err = %v", err)
	}

	removed, err := store.Delete(ctx, it.ID)
	if err != nil || removed.CloudinaryPublicID != "gallery/photo/a" {
		t.Fatalf("Delete = %+v, %v", removed, err)
	}
}
