package files

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"filevault/core/storage"
	"filevault/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

type statReader struct {
	io.Reader
	info minio.ObjectInfo
}

func (s *statReader) Close() error                    { return nil }
func (s *statReader) Stat() (minio.ObjectInfo, error) { return s.info, nil }

type failingReader struct{ err error }

func (f failingReader) Read([]byte) (int, error) { return 0, f.err }
func (f failingReader) Close() error             { return nil }

var errNoSuchKey = minio.ErrorResponse{Code: "NoSuchKey", Message: "The specified key does not exist.", StatusCode: 404}

func setupTestApp() (*fiber.App, *mocks.Client) {
	app := fiber.New()
	mockClient := new(mocks.Client)
	bucket := storage.NewBucket(mockClient, storage.Config{
		Bucket:       "test-bucket",
		ContentType:  "application/octet-stream",
		CacheControl: "max-age=31536000",
		StorageClass: "STANDARD",
		Encryption:   "AES256",
	}, zap.NewNop())
	handler := NewHandler(NewService(bucket, zap.NewNop()))
	handler.RegisterRoutes(app)
	return app, mockClient
}

func decodeEnvelope(t *testing.T, body io.Reader) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(body).Decode(&env))
	return env
}

func TestHandleUpload(t *testing.T) {
	app, mockClient := setupTestApp()

	mockClient.On("PutObject", mock.Anything, "test-bucket", "docs/a.txt", mock.Anything, int64(5),
		mock.MatchedBy(func(o minio.PutObjectOptions) bool {
			return o.ContentType == "text/plain" &&
				o.StorageClass == "REDUCED_REDUNDANCY" &&
				o.UserMetadata["owner"] == "alice" &&
				o.ServerSideEncryption == nil
		})).Return(minio.UploadInfo{ETag: "abc", Size: 5}, nil)

	req := httptest.NewRequest("PUT", "/files?key=docs/a.txt", strings.NewReader("hello"))
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("X-Storage-Class", "REDUCED_REDUNDANCY")
	req.Header.Set("X-Encryption", "none")
	req.Header.Set("X-Meta-Owner", "alice")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	env := decodeEnvelope(t, resp.Body)
	assert.True(t, env.Success)

	var result storage.UploadResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "docs/a.txt", result.Key)
	assert.Equal(t, "abc", result.ETag)
	mockClient.AssertExpectations(t)
}

func TestHandleUpload_Validation(t *testing.T) {
	app, mockClient := setupTestApp()

	tests := []struct {
		name string
		path string
		body string
	}{
		{"Missing key", "/files", "hello"},
		{"Empty body", "/files?key=a.txt", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("PUT", tt.path, strings.NewReader(tt.body)))
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

			env := decodeEnvelope(t, resp.Body)
			assert.False(t, env.Success)
			assert.NotEmpty(t, env.Error)
		})
	}
	mockClient.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleUpload_RemoteFailure(t *testing.T) {
	app, mockClient := setupTestApp()
	mockClient.On("PutObject", mock.Anything, "test-bucket", "a.txt", mock.Anything, int64(5), mock.Anything).
		Return(minio.UploadInfo{}, assert.AnError)

	resp, err := app.Test(httptest.NewRequest("PUT", "/files?key=a.txt", strings.NewReader("hello")))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

	env := decodeEnvelope(t, resp.Body)
	assert.Contains(t, env.Error, "upload failed")
}

func TestHandleDownload(t *testing.T) {
	app, mockClient := setupTestApp()
	modified := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	mockClient.On("GetObject", mock.Anything, "test-bucket", "a.txt", mock.Anything).Return(&statReader{
		Reader: strings.NewReader("hello"),
		info: minio.ObjectInfo{
			ContentType:  "text/plain",
			ETag:         "etag1",
			LastModified: modified,
			UserMetadata: map[string]string{"Owner": "alice"},
		},
	}, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/files/download?key=a.txt", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/plain", resp.Header.Get("Content-Type"))
	assert.Equal(t, `"etag1"`, resp.Header.Get("ETag"))
	assert.Equal(t, "Thu, 02 Jan 2025 03:04:05 GMT", resp.Header.Get("Last-Modified"))
	assert.Equal(t, "alice", resp.Header.Get("X-Meta-Owner"))

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "hello", string(body))
}

func TestHandleDownload_Range(t *testing.T) {
	tests := []struct {
		name         string
		header       string
		upstream     string
		body         string
		want         int
		contentRange string
	}{
		{"Bounded", "bytes=1-3", "bytes=1-3", "ell", fiber.StatusPartialContent, "bytes 1-3/*"},
		{"Open ended", "bytes=2-", "bytes=2-", "llo", fiber.StatusPartialContent, "bytes 2-4/5"},
		{"Short read", "bytes=3-9", "bytes=3-9", "lo", fiber.StatusPartialContent, "bytes 3-4/5"},
		{"Whole object", "bytes=0-", "", "hello", fiber.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, mockClient := setupTestApp()
			mockClient.On("GetObject", mock.Anything, "test-bucket", "a.txt",
				mock.MatchedBy(func(o minio.GetObjectOptions) bool {
					return o.Header().Get("Range") == tt.upstream
				})).Return(&statReader{Reader: strings.NewReader(tt.body)}, nil)

			req := httptest.NewRequest("GET", "/files/download?key=a.txt", nil)
			req.Header.Set("Range", tt.header)

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
			assert.Equal(t, tt.contentRange, resp.Header.Get("Content-Range"))
			assert.Equal(t, "bytes", resp.Header.Get("Accept-Ranges"))
			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, tt.body, string(body))
		})
	}
}

func TestHandleDownload_Errors(t *testing.T) {
	tests := []struct {
		name   string
		header map[string]string
		err    error
		want   int
	}{
		{"Not found", nil, errNoSuchKey, fiber.StatusNotFound},
		{"Access denied", nil, minio.ErrorResponse{Code: "AccessDenied", StatusCode: 403}, fiber.StatusForbidden},
		{"Not modified", map[string]string{"If-None-Match": "etag1"}, minio.ErrorResponse{Code: "NotModified", StatusCode: 304}, fiber.StatusNotModified},
		{"Precondition failed", map[string]string{"If-Match": "other"}, minio.ErrorResponse{Code: "PreconditionFailed", StatusCode: 412}, fiber.StatusPreconditionFailed},
		{"Other", nil, assert.AnError, fiber.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, mockClient := setupTestApp()
			mockClient.On("GetObject", mock.Anything, "test-bucket", "a.txt", mock.Anything).
				Return(failingReader{err: tt.err}, nil)

			req := httptest.NewRequest("GET", "/files/download?key=a.txt", nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestHandleDownload_BadRange(t *testing.T) {
	app, mockClient := setupTestApp()

	for _, header := range []string{"items=0-1", "bytes=-5", "bytes=0-1,4-5", "bytes=a-b", "bytes=9-3"} {
		t.Run(header, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/files/download?key=a.txt", nil)
			req.Header.Set("Range", header)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}
	mockClient.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleDelete(t *testing.T) {
	app, mockClient := setupTestApp()
	mockClient.On("RemoveObject", mock.Anything, "test-bucket", "a.txt", mock.Anything).Return(nil)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/files?key=a.txt", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp.Body)
	assert.Equal(t, "File deleted", env.Message)
}

func TestHandleBatchDelete(t *testing.T) {
	app, mockClient := setupTestApp()

	errs := make(chan minio.RemoveObjectError, 1)
	errs <- minio.RemoveObjectError{ObjectName: "b", Err: assert.AnError}
	close(errs)
	mockClient.On("RemoveObjects", mock.Anything, "test-bucket", []string{"a", "b", "c"}, mock.Anything).
		Return((<-chan minio.RemoveObjectError)(errs))

	body, _ := json.Marshal(BatchDeleteRequest{Keys: []string{"a", "b", "c", "a"}})
	req := httptest.NewRequest("POST", "/files/batch-delete", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp.Body)
	var result storage.BatchDeleteResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 3, result.Requested)
	assert.Equal(t, 2, result.DeletedCount)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "b", result.Errors[0].Key)
}

func TestHandleBatchDelete_BadRequests(t *testing.T) {
	app, _ := setupTestApp()

	for name, body := range map[string]string{
		"Malformed JSON": `{"keys":`,
		"Empty keys":     `{"keys":[]}`,
		"Blank key":      `{"keys":["a",""]}`,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/files/batch-delete", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestHandleList(t *testing.T) {
	app, mockClient := setupTestApp()

	mockClient.On("ListObjectsPage", mock.Anything, "test-bucket", storage.PageQuery{
		Prefix:            "docs/",
		Delimiter:         "/",
		ContinuationToken: "tok1",
		MaxKeys:           2,
	}).Return(minio.ListBucketV2Result{
		Contents:              []minio.ObjectInfo{{Key: "docs/a.txt", Size: 1}, {Key: "docs/b.txt", Size: 2}},
		CommonPrefixes:        []minio.CommonPrefix{{Prefix: "docs/sub/"}},
		IsTruncated:           true,
		NextContinuationToken: "tok2",
	}, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/files?prefix=docs/&delimiter=/&continuation_token=tok1&max_keys=2", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp.Body)
	var result storage.ListResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Len(t, result.Objects, 2)
	assert.Equal(t, []string{"docs/sub/"}, result.CommonPrefixes)
	assert.True(t, result.HasMore)
	assert.Equal(t, "tok2", result.NextContinuationToken)
}

func TestHandleList_InvalidMaxKeys(t *testing.T) {
	app, _ := setupTestApp()

	for _, q := range []string{"max_keys=abc", "max_keys=-1"} {
		resp, err := app.Test(httptest.NewRequest("GET", "/files?"+q, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, q)
	}
}

func TestHandleMetadata(t *testing.T) {
	app, mockClient := setupTestApp()
	mockClient.On("StatObject", mock.Anything, "test-bucket", "a.txt", mock.Anything).
		Return(minio.ObjectInfo{Key: "a.txt", Size: 42, ContentType: "text/plain"}, nil)
	mockClient.On("StatObject", mock.Anything, "test-bucket", "missing", mock.Anything).
		Return(nil, errNoSuchKey)

	resp, err := app.Test(httptest.NewRequest("GET", "/files/metadata?key=a.txt", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	env := decodeEnvelope(t, resp.Body)
	var meta storage.ObjectMetadata
	require.NoError(t, json.Unmarshal(env.Data, &meta))
	assert.True(t, meta.Exists)
	assert.Equal(t, int64(42), meta.Size)

	resp, err = app.Test(httptest.NewRequest("GET", "/files/metadata?key=missing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	env = decodeEnvelope(t, resp.Body)
	require.NoError(t, json.Unmarshal(env.Data, &meta))
	assert.False(t, meta.Exists)
}

func TestHandleExists(t *testing.T) {
	app, mockClient := setupTestApp()
	mockClient.On("StatObject", mock.Anything, "test-bucket", "a.txt", mock.Anything).
		Return(minio.ObjectInfo{Key: "a.txt", Size: 7}, nil)
	mockClient.On("StatObject", mock.Anything, "test-bucket", "flaky", mock.Anything).
		Return(nil, assert.AnError)

	resp, err := app.Test(httptest.NewRequest("GET", "/files/exists?key=a.txt", nil))
	require.NoError(t, err)
	env := decodeEnvelope(t, resp.Body)
	var p Presence
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.True(t, p.Exists)
	require.NotNil(t, p.Size)
	assert.Equal(t, int64(7), *p.Size)
	mockClient.AssertNumberOfCalls(t, "StatObject", 1)

	resp, err = app.Test(httptest.NewRequest("GET", "/files/exists?key=flaky", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	env = decodeEnvelope(t, resp.Body)
	p = Presence{}
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.False(t, p.Exists)
	assert.Nil(t, p.Size)
	mockClient.AssertNumberOfCalls(t, "StatObject", 2)

	resp, err = app.Test(httptest.NewRequest("GET", "/files/exists", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleSign(t *testing.T) {
	app, mockClient := setupTestApp()
	signed, _ := url.Parse("https://s3.example.com/test-bucket/a.txt?X-Amz-Signature=abc")
	mockClient.On("PresignedPutObject", mock.Anything, "test-bucket", "a.txt", 10*time.Minute).Return(signed, nil)

	body := `{"key":"a.txt","operation":"write","expires_in":600}`
	req := httptest.NewRequest("POST", "/files/sign", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp.Body)
	var result storage.SignedURL
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, signed.String(), result.URL)
	assert.Equal(t, int64(600), result.ExpiresIn)
}

func TestHandleSign_ExpiryOutOfRange(t *testing.T) {
	tests := []struct {
		name      string
		expiresIn string
	}{
		{"Negative", "-1"},
		{"Beyond presign limit", "604801"},
		{"Overflows duration", "18446747674"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, mockClient := setupTestApp()

			body := `{"key":"a.txt","operation":"read","expires_in":` + tt.expiresIn + `}`
			req := httptest.NewRequest("POST", "/files/sign", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			env := decodeEnvelope(t, resp.Body)
			assert.Contains(t, env.Error, "expires_in")
			mockClient.AssertNotCalled(t, "PresignedGetObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestHandleSign_UnsupportedOperation(t *testing.T) {
	app, mockClient := setupTestApp()

	req := httptest.NewRequest("POST", "/files/sign", strings.NewReader(`{"key":"a.txt","operation":"delete"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	mockClient.AssertNotCalled(t, "PresignedGetObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockClient.AssertNotCalled(t, "PresignedPutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
