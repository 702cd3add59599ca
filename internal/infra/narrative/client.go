// Package narrative generates the game's flavor text through a Gemini
// generateContent endpoint. Every call degrades to a deterministic
// in-character fallback when the API is unreachable or unconfigured, so
// the engine works fully offline.
package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Puneet-Ratnu/murim/internal/domain"
	"github.com/Puneet-Ratnu/murim/internal/infra/metrics"
)

const defaultModel = "gemini-3-flash-preview"

// Client talks to a Gemini-compatible generateContent API.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

// NewClient creates a narrative client. An empty apiKey puts the client
// in offline mode where every call returns its fallback.
func NewClient(baseURL, apiKey, model string, timeout time.Duration) *Client {
	if model == "" {
		model = defaultModel
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		http:    &http.Client{Timeout: timeout},
	}
}

// ─── Wire types ─────────────────────────────────────────────────────────────

type generateRequest struct {
	Contents []content  `json:"contents"`
	Config   *genConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type genConfig struct {
	ResponseMIMEType string `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// generate sends one prompt and returns the first candidate's text.
func (c *Client) generate(ctx context.Context, prompt string, jsonMode bool) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("narrative: no api key configured")
	}

	reqBody := generateRequest{Contents: []content{{Parts: []part{{Text: prompt}}}}}
	if jsonMode {
		reqBody.Config = &genConfig{ResponseMIMEType: "application/json"}
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("narrative: api returned %s", resp.Status)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("narrative: empty response")
	}
	text := out.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", fmt.Errorf("narrative: empty candidate text")
	}
	return text, nil
}

func (c *Client) text(ctx context.Context, kind, prompt, fallback string) string {
	out, err := c.generate(ctx, prompt, false)
	if err != nil {
		metrics.NarrativeRequests.WithLabelValues(kind, "fallback").Inc()
		return fallback
	}
	metrics.NarrativeRequests.WithLabelValues(kind, "ok").Inc()
	return strings.TrimSpace(out)
}

// ─── Personas ───────────────────────────────────────────────────────────────

func personaInstructions(p domain.MentorPersona) string {
	switch p {
	case domain.PersonaOrthodox:
		return "You are the Saintly Hermit, Leader of the Murim Alliance. You speak calmly, using metaphors of nature, balance, and the Dao. You are polite but firm. You refer to the UPSC syllabus as the 'Orthodox Scripture'."
	case domain.PersonaUnorthodox:
		return "You are the Leader of the Unorthodox Faction. You are crass, brazen, loud, and mocking. You call the user 'brat' or 'weakling'. You value raw power and results over methods. You treat exams as bloody brawls."
	case domain.PersonaHeavenlyDemon:
		return "You are the Great Heavenly Demon. You are arrogant, possessive, and look down on everyone. You use terms like 'This Seat' and 'Ant'. You demand absolute perfection. Failure is an insult to your presence."
	case domain.PersonaCommander:
		return "You are the Grand Commander of Dragon Chains. You are military-minded, strict, and motivational. You treat study sessions as 'drills' and 'warfare'. Focus on strategy, discipline, and serving the nation."
	}
	return ""
}

// ─── Operations ─────────────────────────────────────────────────────────────

// Chapter is one generated story installment.
type Chapter struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// StoryChapter writes the next installment of the cultivator's journey.
func (c *Client) StoryChapter(ctx context.Context, level int, role string) Chapter {
	prompt := fmt.Sprintf(`Write a short, engaging story chapter (approx 100-150 words) for a gamified study app.

Protagonist: a village boy in a Murim (Martial Arts) fantasy world inspired by Ancient India and Wuxia tropes.
Goal: he wants to become the "Minister of Foreign Affairs" (a high ranking sect diplomat).
Current Status: Level %d out of 500. He is currently a %q.

The story should describe his training (studying books as if they are cultivation manuals), overcoming a mental demon (procrastination), or a small victory in the village.

Return JSON: {"title": "...", "content": "..."}`, level, role)

	out, err := c.generate(ctx, prompt, true)
	if err == nil {
		var ch Chapter
		if json.Unmarshal([]byte(out), &ch) == nil && ch.Content != "" {
			metrics.NarrativeRequests.WithLabelValues("story", "ok").Inc()
			return ch
		}
	}
	metrics.NarrativeRequests.WithLabelValues("story", "fallback").Inc()
	return Chapter{
		Title:   fmt.Sprintf("The Path of Level %d", level),
		Content: "He meditated on his books, feeling the Qi of knowledge circulate through his meridians. The path to the Ministry is long, but his will is iron.",
	}
}

// MotivationalQuote returns a short streak-themed quote.
func (c *Client) MotivationalQuote(ctx context.Context, streak int) string {
	prompt := fmt.Sprintf("Give me a short, cute, and motivational quote for a student who has studied for %d days in a row. Theme: Martial Arts/Murim. Max 20 words.", streak)
	return c.text(ctx, "quote", prompt, "Your cultivation is deepening!")
}

// MoodAdvice responds to a clock-in/clock-out mood report in persona.
func (c *Client) MoodAdvice(ctx context.Context, mood domain.MoodType, persona domain.MentorPersona) string {
	prompt := fmt.Sprintf(`%s

The aspirant has clocked in/out and reported their mood as: %q.

Ask them why they feel this way, then give short advice (max 30 words) based on your personality to help their UPSC preparation. Keep it short, immersive, and in character.`,
		personaInstructions(persona), mood)
	return c.text(ctx, "mood", prompt, "The path is long, stay focused.")
}

// MentorReply answers one mentor-chat turn with conversation context.
func (c *Client) MentorReply(ctx context.Context, history []domain.ChatMessage, message string, persona domain.MentorPersona) string {
	var b strings.Builder
	for _, h := range history {
		fmt.Fprintf(&b, "%s: %s\n", h.Sender, h.Text)
	}
	prompt := fmt.Sprintf(`%s

CONVERSATION SO FAR:
%s
USER'S NEW MESSAGE:
%q

Respond to the user. Focus on UPSC preparation, stress management, and discipline. Maintain your persona. Wrap advice in Murim flavor (procrastination is a 'Heart Demon'). Keep the response under 80 words.`,
		personaInstructions(persona), b.String(), message)
	return c.text(ctx, "chat", prompt, "My spiritual connection is weak. I cannot answer now.")
}

// BossQuest is a generated boss exam.
type BossQuest struct {
	IntroText string          `json:"introText"`
	MCQs      []MCQ           `json:"mcqs"`
	Mains     []MainsQuestion `json:"mains"`
}

// MCQ is one multiple-choice question.
type MCQ struct {
	ID           string   `json:"id"`
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
}

// MainsQuestion is one long-form question.
type MainsQuestion struct {
	ID       string `json:"id"`
	Question string `json:"question"`
}

// GenerateBossQuest builds a boss exam from the given topics.
func (c *Client) GenerateBossQuest(ctx context.Context, topics []string, weekly bool, persona domain.MentorPersona) BossQuest {
	countMCQ, countMains, kind := 10, 1, "DAILY"
	if weekly {
		countMCQ, countMains, kind = 25, 5, "WEEKLY"
	}
	prompt := fmt.Sprintf(`%s

You are training a Civil Servant aspirant.
Generate a %s Boss Fight Exam based on these topics: %s.

Difficulty: UPSC CSE (Very Hard). Style: Conceptual and Analytical.

Generate %d MCQs, %d Mains question(s), and an intro message in your persona greeting the user.

Return ONLY JSON: {"introText": "...", "mcqs": [{"id": "1", "question": "...", "options": ["A","B","C","D"], "correctIndex": 0}], "mains": [{"id": "m1", "question": "..."}]}`,
		personaInstructions(persona), kind, strings.Join(topics, ", "), countMCQ, countMains)

	out, err := c.generate(ctx, prompt, true)
	if err == nil {
		var q BossQuest
		if json.Unmarshal([]byte(out), &q) == nil && len(q.MCQs) > 0 {
			metrics.NarrativeRequests.WithLabelValues("boss_quest", "ok").Inc()
			return q
		}
	}
	metrics.NarrativeRequests.WithLabelValues("boss_quest", "fallback").Inc()
	return BossQuest{IntroText: "The Heavens are silent. Train on your own terms today."}
}

// Evaluation is the graded outcome of a boss fight.
type Evaluation struct {
	Feedback   string `json:"feedback"`
	XPReward   int64  `json:"xpReward"`
	GoldReward int64  `json:"goldReward"`
}

// EvaluateBossFight grades a submitted exam. The fallback grants a small
// consolation reward so an API outage never voids a finished fight.
func (c *Client) EvaluateBossFight(ctx context.Context, persona domain.MentorPersona, mcqScore, totalMCQs int, mainsDrafts map[string]string) Evaluation {
	drafts, _ := json.Marshal(mainsDrafts)
	prompt := fmt.Sprintf(`%s

The aspirant has submitted their exam.
MCQ Score: %d/%d.
Mains Answers: %s

Evaluate the Mains answers strictly, like a ruthless UPSC examiner. Decide on a Gold Reward (0 to 100) and XP Reward (0 to 2000) based on performance. Give feedback in your persona.

Return ONLY JSON: {"feedback": "...", "xpReward": 0, "goldReward": 0}`,
		personaInstructions(persona), mcqScore, totalMCQs, drafts)

	out, err := c.generate(ctx, prompt, true)
	if err == nil {
		var ev Evaluation
		if json.Unmarshal([]byte(out), &ev) == nil && ev.Feedback != "" {
			metrics.NarrativeRequests.WithLabelValues("boss_eval", "ok").Inc()
			return ev
		}
	}
	metrics.NarrativeRequests.WithLabelValues("boss_eval", "fallback").Inc()
	return Evaluation{
		Feedback:   "The evaluation scroll was lost in transit.",
		XPReward:   100,
		GoldReward: 10,
	}
}
