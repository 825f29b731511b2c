package testutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dalemusser/auxilium/internal/app/system/media"
)

// FakeMedia is an in-memory media.Uploader that records calls.
type FakeMedia struct {
	mu        sync.Mutex
	n         int
	Uploads   []media.UploadInput
	Deleted   []media.Asset
	FailAfter int // fail uploads once this many have succeeded; 0 disables
	FailAll   bool
}

var _ media.Uploader = (*FakeMedia)(nil)

// ErrFakeUpload is returned by a failing FakeMedia.
var ErrFakeUpload = errors.New("fake upload failure")

func (f *FakeMedia) Upload(_ context.Context, in media.UploadInput) (media.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailAll || (f.FailAfter > 0 && f.n >= f.FailAfter) {
		return media.Asset{}, ErrFakeUpload
	}
	if in.Reader != nil {
		_, _ = io.Copy(io.Discard, in.Reader)
	}
	f.n++
	in.Reader = nil
	f.Uploads = append(f.Uploads, in)

	kind := in.Kind
	if kind == "" || kind == media.KindAuto {
		kind = media.KindFor(in.ContentType, in.Filename)
		if kind == media.KindAuto {
			kind = media.KindRaw
		}
	}
	delivery := media.DeliveryPublic
	if in.Private {
		delivery = media.DeliveryPrivate
	}
	id := fmt.Sprintf("%s/asset_%d", in.Folder, f.n)
	return media.Asset{
		URL:          fmt.Sprintf("https://media.test/%s/%s/%s", kind, delivery, id),
		PublicID:     id,
		ResourceType: string(kind),
		Delivery:     delivery,
	}, nil
}

func (f *FakeMedia) Delete(_ context.Context, a media.Asset) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Deleted = append(f.Deleted, a)
	return nil
}

func (f *FakeMedia) SignedDownloadURL(publicID, format string, ttl time.Duration) (string, error) {
	if f.FailAll {
		return "", ErrFakeUpload
	}
	return fmt.Sprintf("https://media.test/download/%s.%s?ttl=%d", publicID, format, int(ttl.Seconds())), nil
}

// DeletedIDs returns the public ids passed to Delete.
func (f *FakeMedia) DeletedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.Deleted))
	for i, a := range f.Deleted {
		out[i] = a.PublicID
	}
	return out
}

// UploadCount returns how many uploads succeeded.
func (f *FakeMedia) UploadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Uploads)
}
