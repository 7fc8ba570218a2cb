package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storybook-server/internal/auth"
	"storybook-server/internal/models"
	"storybook-server/internal/service"
	servicemocks "storybook-server/internal/service/mocks"
)

const testJWTSecret = "test-secret"

type handlerFixture struct {
	characters *servicemocks.CharacterService
	stories    *servicemocks.StoryService
	scrapbooks *servicemocks.ScrapbookService
	images     *servicemocks.ImageService
	generation *servicemocks.GenerationService
	export     *servicemocks.ExportService
	router     *gin.Engine
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	verifier, err := auth.NewJWTVerifier(testJWTSecret, zap.NewNop())
	require.NoError(t, err)

	f := &handlerFixture{
		characters: new(servicemocks.CharacterService),
		stories:    new(servicemocks.StoryService),
		scrapbooks: new(servicemocks.ScrapbookService),
		images:     new(servicemocks.ImageService),
		generation: new(servicemocks.GenerationService),
		export:     new(servicemocks.ExportService),
	}

	h := NewStorybookHandler(
		f.characters, f.stories, f.scrapbooks, f.images, f.generation, f.export,
		verifier, 10<<20, zap.NewNop(),
	)
	f.router = gin.New()
	h.RegisterRoutes(f.router, nil)
	return f
}

func signToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	claims := models.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

func (f *handlerFixture) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()

	t.Run("missing header", func(t *testing.T) {
		f := newHandlerFixture(t)
		w := f.do(t, http.MethodGet, "/api/characters/my", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed token", func(t *testing.T) {
		f := newHandlerFixture(t)
		w := f.do(t, http.MethodGet, "/api/characters/my", nil, "garbage")
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var resp models.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, models.ErrCodeTokenInvalid, resp.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		f := newHandlerFixture(t)
		claims := models.Claims{
			UserID: userID,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
		require.NoError(t, err)

		w := f.do(t, http.MethodGet, "/api/characters/my", nil, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var resp models.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, models.ErrCodeTokenExpired, resp.Code)
	})

	t.Run("valid token reaches the handler", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.characters.On("ListMine", mock.Anything, userID).Return([]models.CharacterWithURL{}, nil)

		w := f.do(t, http.MethodGet, "/api/characters/my", nil, signToken(t, userID))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestCharacterEndpoints(t *testing.T) {
	userID := uuid.New()

	t.Run("create returns 201 with the character", func(t *testing.T) {
		f := newHandlerFixture(t)
		created := &models.Character{ID: uuid.New(), Name: "Luna", CreatorID: userID, Style: models.StyleWatercolor}
		f.characters.On("Create", mock.Anything, userID, service.CreateCharacterInput{
			Name: "Luna", Description: "a fairy", Style: models.StyleWatercolor,
		}).Return(created, nil)

		w := f.do(t, http.MethodPost, "/api/characters", gin.H{
			"name": "Luna", "description": "a fairy", "style": "watercolor",
		}, signToken(t, userID))
		require.Equal(t, http.StatusCreated, w.Code)

		var resp models.Character
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, created.ID, resp.ID)
	})

	t.Run("create without name fails validation", func(t *testing.T) {
		f := newHandlerFixture(t)
		w := f.do(t, http.MethodPost, "/api/characters", gin.H{"description": "x"}, signToken(t, userID))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		f.characters.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("publish by non-owner maps to 403", func(t *testing.T) {
		f := newHandlerFixture(t)
		characterID := uuid.New()
		f.characters.On("Publish", mock.Anything, userID, characterID).Return(models.ErrForbidden)

		w := f.do(t, http.MethodPost, "/api/characters/"+characterID.String()+"/publish", nil, signToken(t, userID))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("publish unknown character maps to 404", func(t *testing.T) {
		f := newHandlerFixture(t)
		characterID := uuid.New()
		f.characters.On("Publish", mock.Anything, userID, characterID).Return(models.ErrNotFound)

		w := f.do(t, http.MethodPost, "/api/characters/"+characterID.String()+"/publish", nil, signToken(t, userID))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("generate returns soft failure as 200", func(t *testing.T) {
		f := newHandlerFixture(t)
		characterID := uuid.New()
		f.generation.On("GenerateCharacterImage", mock.Anything, userID, characterID).
			Return(&models.GenerationResult{Success: false, Message: "Failed to generate character image. Please try again."}, nil)

		w := f.do(t, http.MethodPost, "/api/characters/"+characterID.String()+"/generate", nil, signToken(t, userID))
		require.Equal(t, http.StatusOK, w.Code)

		var resp models.GenerationResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
	})

	t.Run("generate with malformed id is 400", func(t *testing.T) {
		f := newHandlerFixture(t)
		w := f.do(t, http.MethodPost, "/api/characters/not-a-uuid/generate", nil, signToken(t, userID))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestStoryEndpoints(t *testing.T) {
	userID := uuid.New()

	t.Run("premade catalog", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.stories.On("ListPremade", mock.Anything).Return([]models.PremadeStory{
			{ID: "sample1", Title: "The Magic Forest Adventure"},
		}, nil)

		w := f.do(t, http.MethodGet, "/api/stories/premade", nil, signToken(t, userID))
		require.Equal(t, http.StatusOK, w.Code)

		var resp []models.PremadeStory
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Equal(t, "sample1", resp[0].ID)
	})

	t.Run("remove page with bad number is 400", func(t *testing.T) {
		f := newHandlerFixture(t)
		storyID := uuid.New()
		w := f.do(t, http.MethodDelete, "/api/stories/"+storyID.String()+"/pages/zero", nil, signToken(t, userID))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		f.stories.AssertNotCalled(t, "RemovePage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("export sets download headers", func(t *testing.T) {
		f := newHandlerFixture(t)
		storyID := uuid.New()
		f.export.On("ExportStory", mock.Anything, userID, storyID).
			Return("the-magic-forest.docx", []byte("PKdata"), nil)

		w := f.do(t, http.MethodGet, "/api/stories/"+storyID.String()+"/export", nil, signToken(t, userID))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Disposition"), "the-magic-forest.docx")
	})

	t.Run("print URL", func(t *testing.T) {
		f := newHandlerFixture(t)
		storyID := uuid.New()
		f.stories.On("GeneratePrintURL", mock.Anything, userID, storyID).
			Return(&models.PrintResult{PrintURL: "https://print-demo.com/order?story=" + storyID.String()}, nil)

		w := f.do(t, http.MethodPost, "/api/stories/"+storyID.String()+"/print", nil, signToken(t, userID))
		require.Equal(t, http.StatusOK, w.Code)

		var resp models.PrintResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp.PrintURL, storyID.String())
	})
}

func TestScrapbookEndpoints(t *testing.T) {
	userID := uuid.New()

	t.Run("get resolves images in order", func(t *testing.T) {
		f := newHandlerFixture(t)
		scrapbookID := uuid.New()
		a, b := uuid.New(), uuid.New()
		f.scrapbooks.On("Get", mock.Anything, userID, scrapbookID).Return(&models.ScrapbookDetail{
			Scrapbook: models.Scrapbook{ID: scrapbookID, CreatorID: userID, ImageIDs: []uuid.UUID{b, a}},
			Images: []models.ScrapbookImage{
				{ID: b, URL: "http://assets.local/b.png"},
				{ID: a, URL: "http://assets.local/a.png"},
			},
		}, nil)

		w := f.do(t, http.MethodGet, "/api/scrapbooks/"+scrapbookID.String(), nil, signToken(t, userID))
		require.Equal(t, http.StatusOK, w.Code)

		var resp models.ScrapbookDetail
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Images, 2)
		assert.Equal(t, b, resp.Images[0].ID)
	})

	t.Run("create without images fails binding", func(t *testing.T) {
		f := newHandlerFixture(t)
		w := f.do(t, http.MethodPost, "/api/scrapbooks", gin.H{"title": "Holiday"}, signToken(t, userID))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestImageEndpoints(t *testing.T) {
	userID := uuid.New()

	t.Run("upload-url returns a channel", func(t *testing.T) {
		f := newHandlerFixture(t)
		token := uuid.New()
		f.images.On("CreateUploadChannel", mock.Anything, userID).Return(&models.UploadChannel{
			Token: token, URL: "http://assets.local/uploads/" + token.String(),
		}, nil)

		w := f.do(t, http.MethodPost, "/api/images/upload-url", nil, signToken(t, userID))
		require.Equal(t, http.StatusOK, w.Code)

		var resp models.UploadChannel
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, token, resp.Token)
	})

	t.Run("direct upload needs no bearer token", func(t *testing.T) {
		f := newHandlerFixture(t)
		token := uuid.New()
		assetID := uuid.New()
		f.images.On("HandleDirectUpload", mock.Anything, token.String(), []byte("bytes"), "image/png").
			Return(assetID, nil)

		req := httptest.NewRequest(http.MethodPut, "/uploads/"+token.String(), bytes.NewReader([]byte("bytes")))
		req.Header.Set("Content-Type", "image/png")
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp uploadResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, assetID, resp.ImageID)
	})

	t.Run("spent upload token maps to 403", func(t *testing.T) {
		f := newHandlerFixture(t)
		token := uuid.New()
		f.images.On("HandleDirectUpload", mock.Anything, token.String(), mock.Anything, mock.Anything).
			Return(uuid.Nil, models.ErrUploadTokenInvalid)

		req := httptest.NewRequest(http.MethodPut, "/uploads/"+token.String(), bytes.NewReader([]byte("x")))
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("resolve unknown image maps to 404", func(t *testing.T) {
		f := newHandlerFixture(t)
		imageID := uuid.New()
		f.images.On("ResolveImageURL", mock.Anything, imageID).Return("", models.ErrAssetNotFound)

		w := f.do(t, http.MethodGet, "/api/images/"+imageID.String()+"/url", nil, signToken(t, userID))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("transform returns the demo message", func(t *testing.T) {
		f := newHandlerFixture(t)
		imageID := uuid.New()
		f.images.On("Transform", mock.Anything, userID, imageID, models.StyleSketch).
			Return(&models.TransformResult{
				Success:             true,
				TransformedImageURL: "http://assets.local/orig.png",
				Message:             "Demo: Transforming to sketch style! Real AI integration coming soon.",
			}, nil)

		w := f.do(t, http.MethodPost, "/api/images/transform", gin.H{
			"imageId": imageID.String(), "style": "sketch",
		}, signToken(t, userID))
		require.Equal(t, http.StatusOK, w.Code)

		var resp models.TransformResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Contains(t, resp.Message, "sketch")
	})
}

func TestHealthEndpoint(t *testing.T) {
	f := newHandlerFixture(t)
	w := f.do(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}
