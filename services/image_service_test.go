package services

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thao-tran/glowcare-admin-api/utils"
)

// imageFileHeader builds a *multipart.FileHeader the same way gin hands
// one to the upload handler
func imageFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", filename)
	assert.NoError(t, err)
	_, err = part.Write(content)
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	_, fileHeader, err := req.FormFile("image")
	assert.NoError(t, err)

	return fileHeader
}

func newS3BackedImageService(t *testing.T) (ImageService, *MockS3Service) {
	t.Helper()

	mockS3 := NewMockS3Service()
	mockS3.SetAsMockForTesting()
	service := InitImageService(GetS3Service())
	t.Cleanup(func() {
		SetS3Service(nil)
		SetImageService(nil)
	})

	return service, mockS3
}

func TestS3ImageServiceUploadImage(t *testing.T) {
	service, mockS3 := newS3BackedImageService(t)

	t.Run("valid image is stored under a products key", func(t *testing.T) {
		key, err := service.UploadImage(imageFileHeader(t, "serum.png", []byte("fake png bytes")))
		assert.NoError(t, err)
		assert.Equal(t, "products/mock_serum.png", key)
		assert.True(t, mockS3.FileExists(key))
	})

	t.Run("unsupported format never reaches storage", func(t *testing.T) {
		mockS3.Clear()

		key, err := service.UploadImage(imageFileHeader(t, "serum.gif", []byte("gif bytes")))
		assert.Empty(t, key)

		var uploadErr *utils.FileUploadError
		assert.ErrorAs(t, err, &uploadErr)
		assert.Equal(t, "INVALID_FILE_FORMAT", uploadErr.Code)
		assert.False(t, mockS3.FileExists("products/mock_serum.gif"))
	})
}

func TestS3ImageServiceGetImageURL(t *testing.T) {
	service, mockS3 := newS3BackedImageService(t)

	key, err := service.UploadImage(imageFileHeader(t, "mask.jpg", []byte("fake jpg bytes")))
	assert.NoError(t, err)

	t.Run("uploaded image resolves to a URL for its key", func(t *testing.T) {
		url, err := service.GetImageURL(key)
		assert.NoError(t, err)
		assert.Contains(t, url, key)
	})

	t.Run("empty key resolves to no URL", func(t *testing.T) {
		url, err := service.GetImageURL("")
		assert.NoError(t, err)
		assert.Empty(t, url)
	})

	t.Run("unknown key is an error", func(t *testing.T) {
		mockS3.Clear()

		_, err := service.GetImageURL(key)
		assert.Error(t, err)
	})
}

func TestS3ImageServiceDeleteImage(t *testing.T) {
	service, mockS3 := newS3BackedImageService(t)

	key, err := service.UploadImage(imageFileHeader(t, "wash.webp", []byte("fake webp bytes")))
	assert.NoError(t, err)
	assert.True(t, mockS3.FileExists(key))

	assert.NoError(t, service.DeleteImage(key))
	assert.False(t, mockS3.FileExists(key))

	// deleting with an empty key is a no-op
	assert.NoError(t, service.DeleteImage(""))
}
