// Package shared holds the request plumbing the admin content features have
// in common: id parsing, single-file forms and asset cleanup.
package shared

import (
	"context"
	"errors"
	"net/http"

	apierrors "github.com/dalemusser/auxilium/internal/app/features/errors"
	"github.com/dalemusser/auxilium/internal/app/store/storekit"
	"github.com/dalemusser/auxilium/internal/app/system/formutil"
	"github.com/dalemusser/auxilium/internal/app/system/limits"
	"github.com/dalemusser/auxilium/internal/app/system/media"
	"github.com/dalemusser/auxilium/internal/app/system/respond"
	"github.com/dalemusser/auxilium/internal/app/system/timeouts"
	"github.com/dalemusser/auxilium/internal/app/system/upload"
	"github.com/dalemusser/auxilium/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// MsgTooLarge is sent when a body or file is over its limit.
const MsgTooLarge = "Upload exceeds the allowed size."

// PathID parses the {id} route parameter. On failure it writes a 400 with
// badMsg and returns false.
func PathID(w http.ResponseWriter, r *http.Request, badMsg string) (primitive.ObjectID, bool) {
	id, err := storekit.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, badMsg)
		return primitive.NilObjectID, false
	}
	return id, true
}

// ParseForm reads a JSON, urlencoded or multipart body with room for one
// file of maxFile bytes. Failures are written as a 400.
func ParseForm(w http.ResponseWriter, r *http.Request, errLog *apierrors.ErrorLogger, maxFile int64, badMsg string) (formutil.Values, bool) {
	vals, err := formutil.ParseAny(w, r, maxFile+limits.FormOverhead)
	if err == nil {
		return vals, true
	}
	if errors.Is(err, upload.ErrBodyTooLarge) {
		respond.BadRequest(w, MsgTooLarge)
		return nil, false
	}
	errLog.LogBadRequest(w, r, "unreadable form body", err, badMsg)
	return nil, false
}

// File returns the optional file sent in field. A second file or an
// oversized one is written as a 400 and ok is false.
func File(w http.ResponseWriter, r *http.Request, field string, maxFile int64) (f *upload.File, ok bool) {
	f, err := upload.Single(r, field, maxFile)
	if err != nil {
		respond.BadRequest(w, err.Error())
		return nil, false
	}
	return f, true
}

// Cleanup deletes assets after a failed write. It runs detached from the
// request so a client hanging up does not leave orphans behind.
func Cleanup(r *http.Request, up media.Uploader, log *zap.Logger, assets ...media.Asset) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), timeouts.Long())
	defer cancel()
	media.DeleteAll(ctx, up, assets, log)
}

// DropPhoto removes the file behind a photo that is no longer referenced,
// after a replacement was saved or its document was deleted.
func DropPhoto(ctx context.Context, up media.Uploader, old models.Photo, def media.Kind, log *zap.Logger) {
	if !old.HasAsset() {
		return
	}
	media.DeleteAll(ctx, up, []media.Asset{media.AssetOf(old, def)}, log)
}
