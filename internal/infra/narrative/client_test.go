package narrative_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Puneet-Ratnu/murim/internal/domain"
	"github.com/Puneet-Ratnu/murim/internal/infra/narrative"
)

// stubGemini serves a fixed candidate text for every generateContent call.
func stubGemini(t *testing.T, text string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, ":generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") == "" {
			t.Error("missing api key header")
		}
		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestOfflineMode_FallsBackEverywhere(t *testing.T) {
	c := narrative.NewClient("http://unused", "", "", time.Second)
	ctx := context.Background()

	if got := c.MoodAdvice(ctx, domain.MoodTired, domain.PersonaOrthodox); got != "The path is long, stay focused." {
		t.Errorf("mood advice = %q", got)
	}
	if got := c.MotivationalQuote(ctx, 7); got != "Your cultivation is deepening!" {
		t.Errorf("quote = %q", got)
	}
	if got := c.MentorReply(ctx, nil, "hello", domain.PersonaCommander); got != "My spiritual connection is weak. I cannot answer now." {
		t.Errorf("reply = %q", got)
	}

	ch := c.StoryChapter(ctx, 42, "Novice Cultivator")
	if ch.Title != "The Path of Level 42" || ch.Content == "" {
		t.Errorf("chapter = %+v", ch)
	}

	ev := c.EvaluateBossFight(ctx, domain.PersonaOrthodox, 5, 10, nil)
	if ev.XPReward != 100 || ev.GoldReward != 10 {
		t.Errorf("consolation reward = %+v", ev)
	}
}

func TestMoodAdvice_UsesAPIResponse(t *testing.T) {
	srv := stubGemini(t, "  Rest today, train tomorrow.  ")
	defer srv.Close()

	c := narrative.NewClient(srv.URL, "test-key", "test-model", time.Second)
	got := c.MoodAdvice(context.Background(), domain.MoodTired, domain.PersonaOrthodox)
	if got != "Rest today, train tomorrow." {
		t.Errorf("advice = %q, want trimmed API text", got)
	}
}

func TestStoryChapter_ParsesJSON(t *testing.T) {
	srv := stubGemini(t, `{"title":"The Iron Will","content":"He studied through the storm."}`)
	defer srv.Close()

	c := narrative.NewClient(srv.URL, "test-key", "", time.Second)
	ch := c.StoryChapter(context.Background(), 3, "Village Boy")
	if ch.Title != "The Iron Will" || ch.Content != "He studied through the storm." {
		t.Errorf("chapter = %+v", ch)
	}
}

func TestStoryChapter_MalformedJSONFallsBack(t *testing.T) {
	srv := stubGemini(t, "not json at all")
	defer srv.Close()

	c := narrative.NewClient(srv.URL, "test-key", "", time.Second)
	ch := c.StoryChapter(context.Background(), 3, "Village Boy")
	if ch.Title != "The Path of Level 3" {
		t.Errorf("title = %q, want fallback", ch.Title)
	}
}

func TestGenerateBossQuest_Counts(t *testing.T) {
	quest := `{"introText":"Face me.","mcqs":[{"id":"1","question":"Q","options":["A","B","C","D"],"correctIndex":2}],"mains":[{"id":"m1","question":"Discuss."}]}`
	srv := stubGemini(t, quest)
	defer srv.Close()

	c := narrative.NewClient(srv.URL, "test-key", "", time.Second)
	q := c.GenerateBossQuest(context.Background(), []string{"Polity"}, false, domain.PersonaHeavenlyDemon)
	if q.IntroText != "Face me." || len(q.MCQs) != 1 || q.MCQs[0].CorrectIndex != 2 {
		t.Errorf("quest = %+v", q)
	}
}

func TestServerError_FallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := narrative.NewClient(srv.URL, "test-key", "", time.Second)
	got := c.MotivationalQuote(context.Background(), 30)
	if got != "Your cultivation is deepening!" {
		t.Errorf("quote = %q, want fallback on 429", got)
	}
}
