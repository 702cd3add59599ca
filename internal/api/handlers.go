package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Puneet-Ratnu/murim/internal/app/shop"
	"github.com/Puneet-Ratnu/murim/internal/domain"
)

// statusFor maps domain sentinel errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrTaskNotFound),
		errors.Is(err, domain.ErrPetNotFound),
		errors.Is(err, domain.ErrMaterialNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrInsufficientMaterials),
		errors.Is(err, domain.ErrInsufficientItems),
		errors.Is(err, domain.ErrMaterialUnderflow),
		errors.Is(err, domain.ErrPotionActive),
		errors.Is(err, domain.ErrRevisionNotDue),
		errors.Is(err, domain.ErrCategoryMastered):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNonPositiveAmount),
		errors.Is(err, domain.ErrUnknownPool),
		errors.Is(err, domain.ErrNotEssayDay),
		errors.Is(err, domain.ErrTaskNotCompleted),
		errors.Is(err, domain.ErrNoActivePet):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func fail(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), err.Error())
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// ─── Status & Progress ──────────────────────────────────────────────────────

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	if !s.health.IsHealthy() {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]interface{}{
		"healthy": s.health.IsHealthy(),
		"checks":  s.health.Statuses(),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "Murim is running",
	})
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	p, err := s.ledger.Progress()
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	streak, err := s.streak.RecordSession(time.Now())
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"streak_days": streak})
}

func (s *Server) handleToggleMastery(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Category string `json:"category"`
	}
	if !decode(w, r, &req) {
		return
	}
	mastered, err := s.ledger.ToggleMastery(req.Category)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"mastered": mastered})
}

// ─── Tasks ──────────────────────────────────────────────────────────────────

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	list, err := s.tasks.List()
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tasks": list})
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title"`
		Category    string `json:"category"`
		SubCategory string `json:"sub_category"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	t, err := s.tasks.Create(req.Title, domain.TaskCategory(req.Category), req.SubCategory, time.Now())
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	t, err := s.tasks.Get(chi.URLParam(r, "id"))
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	t, err := s.tasks.Complete(chi.URLParam(r, "id"), time.Now())
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleUncompleteTask(w http.ResponseWriter, r *http.Request) {
	t, err := s.tasks.Uncomplete(chi.URLParam(r, "id"))
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.tasks.Delete(chi.URLParam(r, "id")); err != nil {
		fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ─── Revision ───────────────────────────────────────────────────────────────

func (s *Server) handleRevisionDue(w http.ResponseWriter, r *http.Request) {
	due, err := s.revision.Due(time.Now())
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"due": due})
}

func (s *Server) handleRevisionCheckIn(w http.ResponseWriter, r *http.Request) {
	reward, err := s.revision.CheckIn(chi.URLParam(r, "id"), time.Now())
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reward)
}

// ─── Forge ──────────────────────────────────────────────────────────────────

func (s *Server) handleMaterials(w http.ResponseWriter, r *http.Request) {
	materials, err := s.forge.Materials()
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"materials": materials})
}

func (s *Server) handleItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.forge.Items()
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (s *Server) handleForge(w http.ResponseWriter, r *http.Request) {
	item, err := s.forge.Forge(time.Now())
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleAscend(w http.ResponseWriter, r *http.Request) {
	item, err := s.forge.Ascend(time.Now())
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// ─── Pets ───────────────────────────────────────────────────────────────────

func (s *Server) handleListPets(w http.ResponseWriter, r *http.Request) {
	list, err := s.pets.List()
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"pets": list})
}

func (s *Server) handleAdoptPet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Species string `json:"species"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	p, err := s.pets.Adopt(req.Name, domain.PetSpecies(req.Species), time.Now())
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleActivePet(w http.ResponseWriter, r *http.Request) {
	p, err := s.pets.Active()
	if err != nil {
		fail(w, err)
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "no active pet")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleActivatePet(w http.ResponseWriter, r *http.Request) {
	if err := s.pets.SetActive(chi.URLParam(r, "id")); err != nil {
		fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFeedPet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		XP int64 `json:"xp"`
	}
	if !decode(w, r, &req) {
		return
	}
	p, err := s.pets.Feed(chi.URLParam(r, "id"), req.XP)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// ─── Shop ───────────────────────────────────────────────────────────────────

func (s *Server) handleBuyPotion(w http.ResponseWriter, r *http.Request) {
	if err := s.shop.BuyPotion(shop.MinorXPPotion(), time.Now()); err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.potion.Active())
}

func (s *Server) handleBuyFood(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Cost int64 `json:"cost"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := s.shop.BuyFood(req.Cost); err != nil {
		fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBuyAccessory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
		Cost int64  `json:"cost"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := s.shop.BuyAccessory(req.Name, req.Cost); err != nil {
		fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleActivePotion(w http.ResponseWriter, r *http.Request) {
	p := s.potion.Active()
	if p == nil {
		writeError(w, http.StatusNotFound, "no active potion")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// ─── Activities ─────────────────────────────────────────────────────────────

func (s *Server) handleEssay(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Count int `json:"count"`
		Marks int `json:"marks"`
	}
	if !decode(w, r, &req) {
		return
	}
	res, err := s.dispatcher.EssaySubmitted(time.Now(), req.Count, req.Marks)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleMains(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Count int `json:"count"`
	}
	if !decode(w, r, &req) {
		return
	}
	res, err := s.dispatcher.MainsLogged(time.Now(), req.Count)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleHobby(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type    string `json:"type"`
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if !decode(w, r, &req) {
		return
	}
	res, err := s.dispatcher.HobbyLogged(domain.HobbyType(req.Type), req.Title, req.Content, time.Now())
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ─── Boss Fights ────────────────────────────────────────────────────────────

func (s *Server) handleBossQuest(w http.ResponseWriter, r *http.Request) {
	topics := strings.Split(r.URL.Query().Get("topics"), ",")
	if len(topics) == 1 && topics[0] == "" {
		topics = []string{"General Studies"}
	}
	weekly := r.URL.Query().Get("weekly") == "true"
	quest := s.narrative.GenerateBossQuest(r.Context(), topics, weekly, s.mentor.Persona())
	writeJSON(w, http.StatusOK, quest)
}

func (s *Server) handleBossSubmit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MCQScore  int               `json:"mcq_score"`
		TotalMCQs int               `json:"total_mcqs"`
		Mains     map[string]string `json:"mains"`
	}
	if !decode(w, r, &req) {
		return
	}
	ev := s.narrative.EvaluateBossFight(r.Context(), s.mentor.Persona(), req.MCQScore, req.TotalMCQs, req.Mains)
	res, err := s.dispatcher.BossReward(float64(ev.XPReward), ev.GoldReward)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"feedback":    ev.Feedback,
		"xp_reward":   ev.XPReward,
		"gold_reward": ev.GoldReward,
		"result":      res,
	})
}

// ─── Mentor & Story ─────────────────────────────────────────────────────────

func (s *Server) handleMentorChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if !decode(w, r, &req) {
		return
	}
	reply, err := s.mentor.Chat(r.Context(), req.Message, time.Now())
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

func (s *Server) handleMentorHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.mentor.History()
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"history": history})
}

func (s *Server) handleMood(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mood string `json:"mood"`
		Kind string `json:"kind"` // CLOCK_IN or CLOCK_OUT
	}
	if !decode(w, r, &req) {
		return
	}
	advice, err := s.mentor.ClockMood(r.Context(), domain.MoodType(req.Mood), req.Kind, time.Now())
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"advice": advice})
}

func (s *Server) handleStoryChapter(w http.ResponseWriter, r *http.Request) {
	p, err := s.ledger.Progress()
	if err != nil {
		fail(w, err)
		return
	}
	role := r.URL.Query().Get("role")
	if role == "" {
		role = "Outer Disciple"
	}
	writeJSON(w, http.StatusOK, s.narrative.StoryChapter(r.Context(), p.Level, role))
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	p, err := s.ledger.Progress()
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"quote": s.narrative.MotivationalQuote(r.Context(), p.StreakDays),
	})
}

// ─── Notifications ──────────────────────────────────────────────────────────

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	pending, err := s.notify.Pending(limit)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"notifications": pending})
}

func (s *Server) handleNotificationShown(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid notification id")
		return
	}
	if err := s.notify.MarkShown(id); err != nil {
		fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
