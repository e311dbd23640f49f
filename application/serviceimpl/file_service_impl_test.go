package serviceimpl_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"filevault/application/serviceimpl"
	"filevault/domain/apperrors"
	"filevault/domain/models"
	"filevault/domain/ports"
	"filevault/domain/services"
)

// ========== Spies ==========

type SpyFileRepo struct {
	mock.Mock
}

func (s *SpyFileRepo) Create(ctx context.Context, file *models.File) error {
	args := s.Called(ctx, file)
	return args.Error(0)
}

func (s *SpyFileRepo) GetByIDAndUserID(ctx context.Context, id, userID uuid.UUID) (*models.File, error) {
	args := s.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.File), args.Error(1)
}

func (s *SpyFileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.File, error) {
	args := s.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.File), args.Error(1)
}

func (s *SpyFileRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := s.Called(ctx, id)
	return args.Error(0)
}

func (s *SpyFileRepo) ExistsByBlobKey(ctx context.Context, blobKey string) (bool, error) {
	args := s.Called(ctx, blobKey)
	return args.Bool(0), args.Error(1)
}

func (s *SpyFileRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := s.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type SpyUserRepo struct {
	mock.Mock
}

func (s *SpyUserRepo) Create(ctx context.Context, user *models.User) error {
	args := s.Called(ctx, user)
	return args.Error(0)
}

func (s *SpyUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := s.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (s *SpyUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := s.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (s *SpyUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := s.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (s *SpyUserRepo) AppendFileRef(ctx context.Context, userID uuid.UUID, ref models.FileRef) error {
	args := s.Called(ctx, userID, ref)
	return args.Error(0)
}

func (s *SpyUserRepo) RemoveFileRefByBlobKey(ctx context.Context, userID uuid.UUID, blobKey string) error {
	args := s.Called(ctx, userID, blobKey)
	return args.Error(0)
}

func (s *SpyUserRepo) ReplaceFileRefs(ctx context.Context, userID uuid.UUID, refs models.FileRefList) error {
	args := s.Called(ctx, userID, refs)
	return args.Error(0)
}

func (s *SpyUserRepo) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	args := s.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

type SpyStorage struct {
	mock.Mock
}

func (s *SpyStorage) UploadFile(ctx context.Context, file io.Reader, key string, contentType string) (string, error) {
	args := s.Called(ctx, file, key, contentType)
	return args.String(0), args.Error(1)
}

func (s *SpyStorage) DeleteFile(ctx context.Context, key string) error {
	args := s.Called(ctx, key)
	return args.Error(0)
}

func (s *SpyStorage) ListFiles(ctx context.Context, prefix string) ([]ports.ObjectInfo, error) {
	args := s.Called(ctx, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.ObjectInfo), args.Error(1)
}

func (s *SpyStorage) GetFileURL(key string) string {
	args := s.Called(key)
	return args.String(0)
}

func (s *SpyStorage) GetProviderName() string {
	return "spy"
}

type SpyPublisher struct {
	mock.Mock
}

func (s *SpyPublisher) PublishFileEvent(ctx context.Context, event *ports.FileEvent) error {
	args := s.Called(ctx, event)
	return args.Error(0)
}

type SpyCache struct {
	mock.Mock
}

func (s *SpyCache) Get(ctx context.Context, userID uuid.UUID) ([]*models.File, bool) {
	args := s.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]*models.File), args.Bool(1)
}

func (s *SpyCache) Set(ctx context.Context, userID uuid.UUID, files []*models.File) {
	s.Called(ctx, userID, files)
}

func (s *SpyCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	s.Called(ctx, userID)
}

// ========== Helpers ==========

const testMaxUploadSize = 10 * 1024 * 1024

var testAllowedTypes = []string{
	"image/jpeg", "image/png", "application/pdf", "text/plain",
}

// newFileHeader สร้าง multipart.FileHeader จริงผ่าน multipart form
func newFileHeader(t *testing.T, filename, contentType string, size int) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, err := w.CreatePart(h)
	assert.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("a"), size))
	assert.NoError(t, err)
	assert.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	assert.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	return form.File["file"][0]
}

func newFileService(t *testing.T) (*SpyFileRepo, *SpyUserRepo, *SpyStorage, *SpyPublisher, services.FileService) {
	t.Helper()
	fileRepo := new(SpyFileRepo)
	userRepo := new(SpyUserRepo)
	storage := new(SpyStorage)
	events := new(SpyPublisher)
	svc := serviceimpl.NewFileService(fileRepo, userRepo, storage, nil, events, testMaxUploadSize, testAllowedTypes)
	return fileRepo, userRepo, storage, events, svc
}

// ctxWithDeadline จับว่า call ได้ context ที่มี deadline จริง ไม่ใช่ request ctx เปลือยๆ
func ctxWithDeadline() any {
	return mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	})
}

// ========== UploadFile ==========

func TestFileService_UploadFile(t *testing.T) {
	userID := uuid.New()
	owner := &models.User{ID: userID, Username: "somchai", IsActive: true}

	t.Run("success stores blob then record then ref", func(t *testing.T) {
		fileRepo, userRepo, storage, events, svc := newFileService(t)
		ctx := context.Background()

		userRepo.On("GetByID", mock.Anything, userID).Return(owner, nil)
		storage.On("UploadFile", mock.Anything, mock.Anything, mock.Anything, "image/png").
			Return("https://cdn.example.com/some-key", nil)
		fileRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		userRepo.On("AppendFileRef", mock.Anything, userID, mock.Anything).Return(nil)
		events.On("PublishFileEvent", mock.Anything, mock.Anything).Return(nil)

		record, err := svc.UploadFile(ctx, userID, newFileHeader(t, "vacation photo.png", "image/png", 2048))

		assert.NoError(t, err)
		assert.NotNil(t, record)
		assert.Equal(t, userID, record.UserID)
		assert.Equal(t, "https://cdn.example.com/some-key", record.URL)
		assert.Equal(t, "image/png", record.MimeType)
		assert.Equal(t, int64(2048), record.FileSize)
		assert.True(t, strings.HasPrefix(record.BlobKey, "uploads/"+userID.String()+"/"),
			"blob key must be namespaced per user, got %s", record.BlobKey)
		assert.True(t, strings.HasSuffix(record.BlobKey, ".png"))

		createdRef := userRepo.Calls[len(userRepo.Calls)-1].Arguments.Get(2).(models.FileRef)
		assert.Equal(t, record.BlobKey, createdRef.BlobKey)
		assert.Equal(t, record.URL, createdRef.URL)

		fileRepo.AssertExpectations(t)
		userRepo.AssertExpectations(t)
		storage.AssertExpectations(t)
	})

	t.Run("missing file rejected before any store call", func(t *testing.T) {
		fileRepo, userRepo, storage, _, svc := newFileService(t)

		_, err := svc.UploadFile(context.Background(), userID, nil)

		assert.ErrorIs(t, err, apperrors.ErrNoFile)
		storage.AssertNotCalled(t, "UploadFile")
		fileRepo.AssertNotCalled(t, "Create")
		userRepo.AssertNotCalled(t, "GetByID")
	})

	t.Run("unsupported media type rejected before any store call", func(t *testing.T) {
		fileRepo, userRepo, storage, _, svc := newFileService(t)

		_, err := svc.UploadFile(context.Background(), userID, newFileHeader(t, "payload.zip", "application/zip", 512))

		assert.ErrorIs(t, err, apperrors.ErrUnsupportedMediaType)
		storage.AssertNotCalled(t, "UploadFile")
		fileRepo.AssertNotCalled(t, "Create")
		userRepo.AssertNotCalled(t, "GetByID")
		userRepo.AssertNotCalled(t, "AppendFileRef")
	})

	t.Run("oversized payload rejected before any store call", func(t *testing.T) {
		fileRepo, userRepo, storage, _, svc := newFileService(t)

		big := newFileHeader(t, "huge.pdf", "application/pdf", testMaxUploadSize+1)
		_, err := svc.UploadFile(context.Background(), userID, big)

		assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)
		storage.AssertNotCalled(t, "UploadFile")
		fileRepo.AssertNotCalled(t, "Create")
		userRepo.AssertNotCalled(t, "GetByID")
	})

	t.Run("payload at exact limit accepted", func(t *testing.T) {
		fileRepo, userRepo, storage, events, svc := newFileService(t)
		ctx := context.Background()

		userRepo.On("GetByID", mock.Anything, userID).Return(owner, nil)
		storage.On("UploadFile", mock.Anything, mock.Anything, mock.Anything, "application/pdf").
			Return("https://cdn.example.com/k", nil)
		fileRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		userRepo.On("AppendFileRef", mock.Anything, userID, mock.Anything).Return(nil)
		events.On("PublishFileEvent", mock.Anything, mock.Anything).Return(nil)

		_, err := svc.UploadFile(ctx, userID, newFileHeader(t, "report.pdf", "application/pdf", testMaxUploadSize))

		assert.NoError(t, err)
	})

	t.Run("unknown owner rejected before blob store call", func(t *testing.T) {
		fileRepo, userRepo, storage, _, svc := newFileService(t)
		ctx := context.Background()

		userRepo.On("GetByID", mock.Anything, userID).Return(nil, errors.New("record not found"))

		_, err := svc.UploadFile(ctx, userID, newFileHeader(t, "a.png", "image/png", 100))

		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
		storage.AssertNotCalled(t, "UploadFile")
		fileRepo.AssertNotCalled(t, "Create")
	})

	t.Run("blob store failure leaves no metadata behind", func(t *testing.T) {
		fileRepo, userRepo, storage, _, svc := newFileService(t)
		ctx := context.Background()

		userRepo.On("GetByID", mock.Anything, userID).Return(owner, nil)
		storage.On("UploadFile", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("", errors.New("connection refused"))

		_, err := svc.UploadFile(ctx, userID, newFileHeader(t, "a.png", "image/png", 100))

		assert.ErrorIs(t, err, apperrors.ErrBlobStore)
		fileRepo.AssertNotCalled(t, "Create")
		userRepo.AssertNotCalled(t, "AppendFileRef")
	})

	t.Run("record insert failure does not roll back blob", func(t *testing.T) {
		fileRepo, userRepo, storage, events, svc := newFileService(t)
		ctx := context.Background()

		userRepo.On("GetByID", mock.Anything, userID).Return(owner, nil)
		storage.On("UploadFile", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("https://cdn.example.com/k", nil)
		fileRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("deadlock detected"))
		events.On("PublishFileEvent", mock.Anything, mock.MatchedBy(func(e *ports.FileEvent) bool {
			return e.Type == ports.FileEventOrphaned
		})).Return(nil)

		_, err := svc.UploadFile(ctx, userID, newFileHeader(t, "a.png", "image/png", 100))

		assert.ErrorIs(t, err, apperrors.ErrMetadataStore)
		// blob ค้างไว้ให้ sweep — ห้ามพยายามลบตรงนี้
		storage.AssertNotCalled(t, "DeleteFile")
		userRepo.AssertNotCalled(t, "AppendFileRef")
		events.AssertExpectations(t)
	})

	t.Run("ref append failure surfaces metadata error", func(t *testing.T) {
		fileRepo, userRepo, storage, events, svc := newFileService(t)
		ctx := context.Background()

		userRepo.On("GetByID", mock.Anything, userID).Return(owner, nil)
		storage.On("UploadFile", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("https://cdn.example.com/k", nil)
		fileRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		userRepo.On("AppendFileRef", mock.Anything, userID, mock.Anything).Return(errors.New("connection reset"))

		_, err := svc.UploadFile(ctx, userID, newFileHeader(t, "a.png", "image/png", 100))

		assert.ErrorIs(t, err, apperrors.ErrMetadataStore)
		storage.AssertNotCalled(t, "DeleteFile")
		events.AssertNotCalled(t, "PublishFileEvent",
			mock.Anything, mock.MatchedBy(func(e *ports.FileEvent) bool { return e.Type == ports.FileEventUploaded }))
	})

	t.Run("mime type resolved from extension when header missing", func(t *testing.T) {
		fileRepo, userRepo, storage, events, svc := newFileService(t)
		ctx := context.Background()

		userRepo.On("GetByID", mock.Anything, userID).Return(owner, nil)
		storage.On("UploadFile", mock.Anything, mock.Anything, mock.Anything, "application/pdf").
			Return("https://cdn.example.com/k", nil)
		fileRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		userRepo.On("AppendFileRef", mock.Anything, userID, mock.Anything).Return(nil)
		events.On("PublishFileEvent", mock.Anything, mock.Anything).Return(nil)

		record, err := svc.UploadFile(ctx, userID, newFileHeader(t, "invoice.pdf", "", 100))

		assert.NoError(t, err)
		assert.Equal(t, "application/pdf", record.MimeType)
	})
}

// ทุก workflow ต้องวิ่งบน context ที่มี deadline — metadata store ด้วย
// ไม่ใช่แค่ blob store ไม่งั้น db ที่ hang ทำให้ request ค้างไม่จำกัด
func TestFileService_BoundedContexts(t *testing.T) {
	userID := uuid.New()
	fileID := uuid.New()
	owner := &models.User{ID: userID, Username: "somchai", IsActive: true}

	t.Run("upload metadata calls carry a deadline", func(t *testing.T) {
		fileRepo, userRepo, storage, events, svc := newFileService(t)

		userRepo.On("GetByID", ctxWithDeadline(), userID).Return(owner, nil)
		storage.On("UploadFile", ctxWithDeadline(), mock.Anything, mock.Anything, mock.Anything).
			Return("https://cdn.example.com/k", nil)
		fileRepo.On("Create", ctxWithDeadline(), mock.Anything).Return(nil)
		userRepo.On("AppendFileRef", ctxWithDeadline(), userID, mock.Anything).Return(nil)
		events.On("PublishFileEvent", mock.Anything, mock.Anything).Return(nil)

		_, err := svc.UploadFile(context.Background(), userID, newFileHeader(t, "a.png", "image/png", 100))

		assert.NoError(t, err)
		fileRepo.AssertExpectations(t)
		userRepo.AssertExpectations(t)
		storage.AssertExpectations(t)
	})

	t.Run("list repository call carries a deadline", func(t *testing.T) {
		fileRepo, _, _, _, svc := newFileService(t)

		fileRepo.On("GetByUserID", ctxWithDeadline(), userID).Return([]*models.File{}, nil)

		_, err := svc.GetUserFiles(context.Background(), userID)

		assert.NoError(t, err)
		fileRepo.AssertExpectations(t)
	})

	t.Run("delete metadata calls carry a deadline", func(t *testing.T) {
		fileRepo, userRepo, storage, events, svc := newFileService(t)
		stored := &models.File{ID: fileID, UserID: userID, BlobKey: "uploads/" + userID.String() + "/k.png"}

		fileRepo.On("GetByIDAndUserID", ctxWithDeadline(), fileID, userID).Return(stored, nil)
		storage.On("DeleteFile", ctxWithDeadline(), stored.BlobKey).Return(nil)
		fileRepo.On("Delete", ctxWithDeadline(), fileID).Return(nil)
		userRepo.On("RemoveFileRefByBlobKey", ctxWithDeadline(), userID, stored.BlobKey).Return(nil)
		events.On("PublishFileEvent", mock.Anything, mock.Anything).Return(nil)

		err := svc.DeleteFile(context.Background(), userID, fileID)

		assert.NoError(t, err)
		fileRepo.AssertExpectations(t)
		userRepo.AssertExpectations(t)
	})
}

// ========== GetUserFiles ==========

func TestFileService_GetUserFiles(t *testing.T) {
	userID := uuid.New()

	t.Run("returns files newest first from repository", func(t *testing.T) {
		fileRepo, _, _, _, svc := newFileService(t)
		ctx := context.Background()

		now := time.Now().UTC()
		files := []*models.File{
			{ID: uuid.New(), UserID: userID, FileName: "b.png", UploadedAt: now},
			{ID: uuid.New(), UserID: userID, FileName: "a.png", UploadedAt: now.Add(-time.Hour)},
		}
		fileRepo.On("GetByUserID", mock.Anything, userID).Return(files, nil)

		got, err := svc.GetUserFiles(ctx, userID)

		assert.NoError(t, err)
		assert.Equal(t, files, got)
	})

	t.Run("no files yields empty slice not nil", func(t *testing.T) {
		fileRepo, _, _, _, svc := newFileService(t)
		ctx := context.Background()

		fileRepo.On("GetByUserID", mock.Anything, userID).Return(nil, nil)

		got, err := svc.GetUserFiles(ctx, userID)

		assert.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("repository failure maps to metadata store error", func(t *testing.T) {
		fileRepo, _, _, _, svc := newFileService(t)
		ctx := context.Background()

		fileRepo.On("GetByUserID", mock.Anything, userID).Return(nil, errors.New("timeout"))

		_, err := svc.GetUserFiles(ctx, userID)

		assert.ErrorIs(t, err, apperrors.ErrMetadataStore)
	})

	t.Run("cache hit skips repository", func(t *testing.T) {
		fileRepo := new(SpyFileRepo)
		userRepo := new(SpyUserRepo)
		storage := new(SpyStorage)
		cache := new(SpyCache)
		svc := serviceimpl.NewFileService(fileRepo, userRepo, storage, cache, nil, testMaxUploadSize, testAllowedTypes)
		ctx := context.Background()

		cached := []*models.File{{ID: uuid.New(), UserID: userID}}
		cache.On("Get", mock.Anything, userID).Return(cached, true)

		got, err := svc.GetUserFiles(ctx, userID)

		assert.NoError(t, err)
		assert.Equal(t, cached, got)
		fileRepo.AssertNotCalled(t, "GetByUserID")
	})

	t.Run("cache miss populates cache", func(t *testing.T) {
		fileRepo := new(SpyFileRepo)
		cache := new(SpyCache)
		svc := serviceimpl.NewFileService(fileRepo, new(SpyUserRepo), new(SpyStorage), cache, nil, testMaxUploadSize, testAllowedTypes)
		ctx := context.Background()

		files := []*models.File{{ID: uuid.New(), UserID: userID}}
		cache.On("Get", mock.Anything, userID).Return(nil, false)
		fileRepo.On("GetByUserID", mock.Anything, userID).Return(files, nil)
		cache.On("Set", mock.Anything, userID, files).Return()

		got, err := svc.GetUserFiles(ctx, userID)

		assert.NoError(t, err)
		assert.Equal(t, files, got)
		cache.AssertExpectations(t)
	})
}

// ========== DeleteFile ==========

func TestFileService_DeleteFile(t *testing.T) {
	userID := uuid.New()
	fileID := uuid.New()
	stored := &models.File{
		ID:      fileID,
		UserID:  userID,
		BlobKey: "uploads/" + userID.String() + "/abc-photo.png",
	}

	t.Run("success removes blob record and ref", func(t *testing.T) {
		fileRepo, userRepo, storage, events, svc := newFileService(t)
		ctx := context.Background()

		fileRepo.On("GetByIDAndUserID", mock.Anything, fileID, userID).Return(stored, nil)
		storage.On("DeleteFile", mock.Anything, stored.BlobKey).Return(nil)
		fileRepo.On("Delete", mock.Anything, fileID).Return(nil)
		userRepo.On("RemoveFileRefByBlobKey", mock.Anything, userID, stored.BlobKey).Return(nil)
		events.On("PublishFileEvent", mock.Anything, mock.MatchedBy(func(e *ports.FileEvent) bool {
			return e.Type == ports.FileEventDeleted
		})).Return(nil)

		err := svc.DeleteFile(ctx, userID, fileID)

		assert.NoError(t, err)
		fileRepo.AssertExpectations(t)
		userRepo.AssertExpectations(t)
		storage.AssertExpectations(t)
		events.AssertExpectations(t)
	})

	t.Run("blob delete failure still cleans up metadata", func(t *testing.T) {
		fileRepo, userRepo, storage, events, svc := newFileService(t)
		ctx := context.Background()

		fileRepo.On("GetByIDAndUserID", mock.Anything, fileID, userID).Return(stored, nil)
		storage.On("DeleteFile", mock.Anything, stored.BlobKey).Return(errors.New("503 service unavailable"))
		fileRepo.On("Delete", mock.Anything, fileID).Return(nil)
		userRepo.On("RemoveFileRefByBlobKey", mock.Anything, userID, stored.BlobKey).Return(nil)
		events.On("PublishFileEvent", mock.Anything, mock.Anything).Return(nil)

		err := svc.DeleteFile(ctx, userID, fileID)

		assert.NoError(t, err)
		fileRepo.AssertCalled(t, "Delete", mock.Anything, fileID)
		userRepo.AssertCalled(t, "RemoveFileRefByBlobKey", mock.Anything, userID, stored.BlobKey)
	})

	t.Run("unknown file yields not found without side effects", func(t *testing.T) {
		fileRepo, userRepo, storage, _, svc := newFileService(t)
		ctx := context.Background()

		fileRepo.On("GetByIDAndUserID", mock.Anything, fileID, userID).Return(nil, errors.New("record not found"))

		err := svc.DeleteFile(ctx, userID, fileID)

		assert.ErrorIs(t, err, apperrors.ErrFileNotFound)
		storage.AssertNotCalled(t, "DeleteFile")
		fileRepo.AssertNotCalled(t, "Delete")
		userRepo.AssertNotCalled(t, "RemoveFileRefByBlobKey")
	})

	t.Run("another user's file is indistinguishable from missing", func(t *testing.T) {
		fileRepo, userRepo, storage, _, svc := newFileService(t)
		ctx := context.Background()
		otherUser := uuid.New()

		// ownership อยู่ใน lookup predicate — คนอื่น query ไม่เจอ
		fileRepo.On("GetByIDAndUserID", mock.Anything, fileID, otherUser).Return(nil, errors.New("record not found"))

		err := svc.DeleteFile(ctx, otherUser, fileID)

		assert.ErrorIs(t, err, apperrors.ErrFileNotFound)
		storage.AssertNotCalled(t, "DeleteFile")
		fileRepo.AssertNotCalled(t, "Delete")
		userRepo.AssertNotCalled(t, "RemoveFileRefByBlobKey")
	})

	t.Run("record delete failure surfaces metadata error", func(t *testing.T) {
		fileRepo, userRepo, storage, events, svc := newFileService(t)
		ctx := context.Background()

		fileRepo.On("GetByIDAndUserID", mock.Anything, fileID, userID).Return(stored, nil)
		storage.On("DeleteFile", mock.Anything, stored.BlobKey).Return(nil)
		fileRepo.On("Delete", mock.Anything, fileID).Return(errors.New("timeout"))

		err := svc.DeleteFile(ctx, userID, fileID)

		assert.ErrorIs(t, err, apperrors.ErrMetadataStore)
		userRepo.AssertNotCalled(t, "RemoveFileRefByBlobKey")
		events.AssertNotCalled(t, "PublishFileEvent",
			mock.Anything, mock.MatchedBy(func(e *ports.FileEvent) bool { return e.Type == ports.FileEventDeleted }))
	})
}
