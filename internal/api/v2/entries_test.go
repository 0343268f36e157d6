package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surimlab/challenge500/internal/datastore"
	"github.com/surimlab/challenge500/internal/errors"
	"github.com/surimlab/challenge500/internal/textscore"
)

const testAnonID = "11111111-2222-3333-4444-555555555555"

func postEntry(e *echo.Echo, payload string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v2/entries", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.AddCookie(&http.Cookie{Name: anonCookieName, Value: testAnonID})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCreateEntrySuccess(t *testing.T) {
	var saved *datastore.Entry
	store := &mockStore{
		saveFn: func(entry *datastore.Entry) error {
			saved = entry
			return nil
		},
	}
	_, e := newTestController(t, store)

	body := "그날 밤, 그는 조용히 떠났다. 하지만 나는 아무 말도 하지 못했다."
	payload, err := json.Marshal(map[string]string{"title": "밤", "body": body})
	require.NoError(t, err)

	rec := postEntry(e, string(payload))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp EntryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "created", resp.State)
	assert.Equal(t, len(body), resp.Evaluation.ByteCount)
	assert.Positive(t, resp.Evaluation.Score)
	assert.NotEmpty(t, resp.Evaluation.Tags)
	assert.Equal(t, textscore.SentinelTag, resp.Evaluation.Tags[len(resp.Evaluation.Tags)-1])
	assert.NotEmpty(t, resp.OgImage)
	assert.Nil(t, resp.Arcana)

	require.NotNil(t, saved)
	assert.Equal(t, "anon:"+testAnonID, saved.OwnerKey)
	assert.Equal(t, saved.OwnerKey+"@"+saved.SubmitYmd, saved.DayKey)
	require.NotNil(t, saved.AnonID)
	assert.Equal(t, testAnonID, *saved.AnonID)
}

func TestCreateEntryNormalizesToNFC(t *testing.T) {
	_, e := newTestController(t, &mockStore{})

	// decomposed Hangul syllable, 9 bytes before normalization
	decomposed := "한"
	payload, err := json.Marshal(map[string]string{"title": "t", "body": decomposed})
	require.NoError(t, err)

	rec := postEntry(e, string(payload))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp EntryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Evaluation.ByteCount)
	assert.Equal(t, "한", resp.Body)
}

func TestCreateEntryRejectsEmptyBody(t *testing.T) {
	_, e := newTestController(t, &mockStore{})

	rec := postEntry(e, `{"title":"t","body":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateEntryRejectsEmptyTitle(t *testing.T) {
	store := &mockStore{
		saveFn: func(entry *datastore.Entry) error {
			t.Fatal("entry should not be saved")
			return nil
		},
	}
	_, e := newTestController(t, store)

	for _, title := range []string{"", "   "} {
		rec := postEntry(e, `{"title":"`+title+`","body":"유효한 본문입니다."}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

func TestCreateEntryRejectsOversizedBody(t *testing.T) {
	_, e := newTestController(t, &mockStore{})

	big := strings.Repeat("가", 500) // 1500 bytes
	payload, err := json.Marshal(map[string]string{"title": "t", "body": big})
	require.NoError(t, err)

	rec := postEntry(e, string(payload))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateEntryDailyLimitPreCheck(t *testing.T) {
	store := &mockStore{
		countFn: func(owner datastore.Owner, ymd string) (int64, error) {
			return 1, nil
		},
	}
	_, e := newTestController(t, store)

	rec := postEntry(e, `{"title":"t","body":"오늘의 두 번째 시도."}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestCreateEntryConflictOnSave(t *testing.T) {
	store := &mockStore{
		saveFn: func(entry *datastore.Entry) error {
			return errors.Newf("duplicate day key").
				Category(errors.CategoryConflict).
				Component("datastore").
				Build()
		},
	}
	_, e := newTestController(t, store)

	rec := postEntry(e, `{"title":"t","body":"경쟁 조건의 두 번째 제출."}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestCreateEntryInvalidJSON(t *testing.T) {
	_, e := newTestController(t, &mockStore{})

	rec := postEntry(e, `{"body":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// fakeOracle returns fixed scores or an error.
type fakeOracle struct {
	scores *textscore.OracleScores
	err    error
	calls  int
}

func (f *fakeOracle) Evaluate(ctx context.Context, title, body string) (*textscore.OracleScores, error) {
	f.calls++
	return f.scores, f.err
}

func TestCreateEntryUsesOracle(t *testing.T) {
	oracle := &fakeOracle{
		scores: &textscore.OracleScores{
			FirstSentence: 8, Freeze: 9, Space: 9, Linger: 9,
			Bleak: 5, Detour: 7, MicroRecovery: 5, Rhythm: 4, MicroParticles: 5,
			Layer: 4, World: 3, Theme: 3,
			Analysis: "문장 밀도가 높다.",
		},
	}

	store := &mockStore{}
	settings := testSettings()
	settings.Oracle.Enabled = true

	e := newEchoWithSettings(t, store, settings, WithOracle(oracle))

	body := "그는 떠났다. 하지만 나는 남았다."
	payload, err := json.Marshal(map[string]string{"title": "t", "body": body})
	require.NoError(t, err)

	rec := postEntry(e, string(payload))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	assert.Equal(t, 1, oracle.calls)

	var resp EntryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"문장 밀도가 높다."}, resp.Evaluation.Reasons)
	assert.Equal(t, 8, resp.Evaluation.Detail.FirstSentence)
}

func TestCreateEntryOracleFailureFallsBack(t *testing.T) {
	oracle := &fakeOracle{err: fmt.Errorf("oracle unavailable")}

	settings := testSettings()
	settings.Oracle.Enabled = true

	e := newEchoWithSettings(t, &mockStore{}, settings, WithOracle(oracle))

	rec := postEntry(e, `{"title":"t","body":"오라클이 죽어도 제출은 된다."}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp EntryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{textscore.FallbackReason}, resp.Evaluation.Reasons)
}

func TestGetEntrySuccess(t *testing.T) {
	entry := sampleStoredEntry()
	store := &mockStore{
		getFn: func(id string) (datastore.Entry, error) {
			return entry, nil
		},
	}
	_, e := newTestController(t, store)

	req := httptest.NewRequest(http.MethodGet, "/api/v2/entries/"+entry.ID, http.NoBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp EntryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, entry.ID, resp.ID)
	assert.Equal(t, entry.TotalScore, resp.Evaluation.Score)
	assert.Equal(t, textscore.DisplayScore(entry.TotalScore), resp.Evaluation.DisplayScore)
}

func TestGetEntryCached(t *testing.T) {
	entry := sampleStoredEntry()
	store := &mockStore{
		getFn: func(id string) (datastore.Entry, error) {
			return entry, nil
		},
	}
	_, e := newTestController(t, store)

	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/api/v2/entries/"+entry.ID, http.NoBody)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Equal(t, 1, store.getCalls)
}

func TestGetEntryNotFound(t *testing.T) {
	store := &mockStore{
		getFn: func(id string) (datastore.Entry, error) {
			return datastore.Entry{}, errors.Newf("entry not found: %s", id).
				Category(errors.CategoryNotFound).
				Component("datastore").
				Build()
		},
	}
	_, e := newTestController(t, store)

	req := httptest.NewRequest(http.MethodGet, "/api/v2/entries/missing", http.NoBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.CorrelationID)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestListEntries(t *testing.T) {
	var gotOwner datastore.Owner
	var gotLimit int
	store := &mockStore{
		listFn: func(owner datastore.Owner, limit int) ([]datastore.Entry, error) {
			gotOwner = owner
			gotLimit = limit
			return []datastore.Entry{sampleStoredEntry()}, nil
		},
	}
	_, e := newTestController(t, store)

	req := httptest.NewRequest(http.MethodGet, "/api/v2/entries?limit=10", http.NoBody)
	req.AddCookie(&http.Cookie{Name: anonCookieName, Value: testAnonID})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "anon:"+testAnonID, gotOwner.Key())
	assert.Equal(t, 10, gotLimit)

	var resp struct {
		Entries []EntryResponse `json:"entries"`
		Count   int             `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Entries, 1)
}

func TestListEntriesLimitValidation(t *testing.T) {
	var gotLimit int
	store := &mockStore{
		listFn: func(owner datastore.Owner, limit int) ([]datastore.Entry, error) {
			gotLimit = limit
			return []datastore.Entry{}, nil
		},
	}
	_, e := newTestController(t, store)

	// non-numeric limit is rejected
	req := httptest.NewRequest(http.MethodGet, "/api/v2/entries?limit=abc", http.NoBody)
	req.AddCookie(&http.Cookie{Name: anonCookieName, Value: testAnonID})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// oversized limit is capped
	req = httptest.NewRequest(http.MethodGet, "/api/v2/entries?limit=9999", http.NoBody)
	req.AddCookie(&http.Cookie{Name: anonCookieName, Value: testAnonID})
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, maxListLimit, gotLimit)
}

// sampleStoredEntry builds a stored entry owned by the test anon identity.
func sampleStoredEntry() datastore.Entry {
	anonID := testAnonID
	return datastore.Entry{
		ID:         "entry-1",
		AnonID:     &anonID,
		OwnerKey:   "anon:" + testAnonID,
		Title:      "밤",
		Body:       "그날 밤, 그는 조용히 떠났다. 하지만 나는 아무 말도 하지 못했다.",
		ByteCount:  88,
		SubmitYmd:  "2026-08-31",
		DayKey:     "anon:" + testAnonID + "@2026-08-31",
		TotalScore: 61,
		Tags:       []string{textscore.TagStable, textscore.SentinelTag},
		Reasons:    []string{textscore.FallbackReason},
		OgImage:    "/og/500/unicorn-purple.png",
		OgCreature: "unicorn",
		OgColor:    "purple",
		CreatedAt:  time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
	}
}
