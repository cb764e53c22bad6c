package blob

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCloudinary struct {
	mock.Mock
}

func (m *mockCloudinary) Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error) {
	args := m.Called(ctx, file, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*uploader.UploadResult), args.Error(1)
}

func (m *mockCloudinary) Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*uploader.DestroyResult), args.Error(1)
}

func TestCloudinaryStore_Upload(t *testing.T) {
	m := new(mockCloudinary)
	m.On("Upload", mock.Anything, mock.Anything, uploader.UploadParams{Folder: "foodshare_donations"}).
		Return(&uploader.UploadResult{SecureURL: "https://res.cloudinary.com/x.jpg", PublicID: "foodshare_donations/x"}, nil)

	store := &CloudinaryStore{api: m, folder: "foodshare_donations"}
	obj, err := store.Upload(context.Background(), Upload{Filename: "x.jpg", Body: strings.NewReader("img")})
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/x.jpg", obj.URL)
	assert.Equal(t, "foodshare_donations/x", obj.Handle)
	m.AssertExpectations(t)
}

func TestCloudinaryStore_UploadErrors(t *testing.T) {
	t.Run("transport error", func(t *testing.T) {
		m := new(mockCloudinary)
		m.On("Upload", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))
		store := &CloudinaryStore{api: m}
		_, err := store.Upload(context.Background(), Upload{Body: strings.NewReader("img")})
		assert.Error(t, err)
	})

	t.Run("api error", func(t *testing.T) {
		m := new(mockCloudinary)
		m.On("Upload", mock.Anything, mock.Anything, mock.Anything).
			Return(&uploader.UploadResult{Error: api.ErrorResp{Message: "Invalid image file"}}, nil)
		store := &CloudinaryStore{api: m}
		_, err := store.Upload(context.Background(), Upload{Body: strings.NewReader("img")})
		assert.ErrorContains(t, err, "Invalid image file")
	})

	t.Run("partial result is destroyed", func(t *testing.T) {
		m := new(mockCloudinary)
		m.On("Upload", mock.Anything, mock.Anything, mock.Anything).
			Return(&uploader.UploadResult{PublicID: "foodshare_donations/half"}, nil)
		m.On("Destroy", mock.Anything, uploader.DestroyParams{PublicID: "foodshare_donations/half"}).
			Return(&uploader.DestroyResult{Result: "ok"}, nil)
		store := &CloudinaryStore{api: m}
		_, err := store.Upload(context.Background(), Upload{Body: strings.NewReader("img")})
		assert.Error(t, err)
		m.AssertExpectations(t)
	})
}
