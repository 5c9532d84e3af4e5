package main

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrymomot/hxforge"
	"github.com/dmitrymomot/hxforge/pkg/htmx"
)

// Task is a single entry on the board.
type Task struct {
	ID    int
	Title string
	Done  bool
}

// Job is the simulated long-running export polled by the client.
type Job struct {
	ID       int
	Progress int
}

// boardPage is the data every template of the board receives.
type boardPage struct {
	Tasks  []Task
	Open   int
	Query  string
	Job    *Job
	Notice string
}

// board is an in-memory task list.
type board struct {
	mu     sync.Mutex
	tasks  []Task
	nextID int
	jobs   map[int]*Job
	step   int
}

func newBoard(step int) *board {
	return &board{
		tasks:  []Task{{ID: 1, Title: "Read the htmx docs"}, {ID: 2, Title: "Ship the board", Done: true}},
		nextID: 3,
		jobs:   make(map[int]*Job),
		step:   step,
	}
}

func (b *board) Routes(r hxforge.Router) {
	r.GET("/", b.index)
	r.GET("/tasks", b.search)
	r.POST("/tasks", b.create)
	r.PATCH("/tasks/{id}", b.toggle)
	r.DELETE("/tasks/{id}", b.remove)
	r.POST("/tasks/{id}/rename", b.rename)
	r.POST("/exports", b.startExport)
	r.GET("/exports/{id}", b.pollExport)
	r.GET("/about", b.about)
	r.POST("/reset", b.reset)
	r.POST("/logout", b.logout)
}

// index renders the full board. A boosted navigation or history restore
// gets the full page as well; a plain htmx request only gets the list.
func (b *board) index(c hxforge.Context) error {
	if f := c.Facts(); f.IsPlain() && !f.IsHistoryRestore() {
		c.HTMX().SetFragments([]string{"rows", "counter"}, false)
	}
	return c.View(http.StatusOK, "board", b.page(""))
}

// search filters the list. The query is pushed to the URL so the back
// button restores it.
func (b *board) search(c hxforge.Context) error {
	q := strings.TrimSpace(c.Query("q"))
	c.HTMX().
		SetFragments([]string{"rows"}, false).
		PushURL("/tasks?q=" + q)
	return c.View(http.StatusOK, "board", b.page(q))
}

func (b *board) create(c hxforge.Context) error {
	title := strings.TrimSpace(c.Form("title"))
	if title == "" {
		return hxforge.NewHTTPError(http.StatusUnprocessableEntity, "title is required")
	}

	b.mu.Lock()
	task := Task{ID: b.nextID, Title: title}
	b.nextID++
	b.tasks = append(b.tasks, task)
	b.mu.Unlock()

	c.HTMX().
		Trigger("tasks-changed", nil).
		TriggerAfterSwap("focus", "#new-title").
		TriggerAfterSettle("toast", map[string]any{"level": "ok", "text": "Added " + title}).
		SetFragments([]string{"rows", "counter"}, false)
	return c.View(http.StatusCreated, "board", b.page(""))
}

func (b *board) toggle(c hxforge.Context) error {
	id := hxforge.Param[int](c, "id")

	b.mu.Lock()
	i := b.indexOf(id)
	if i < 0 {
		b.mu.Unlock()
		return hxforge.NewHTTPError(http.StatusNotFound, "task not found")
	}
	b.tasks[i].Done = !b.tasks[i].Done
	task := b.tasks[i]
	b.mu.Unlock()

	c.HTMX().
		Trigger("task-toggled", map[string]any{"id": task.ID, "done": task.Done}).
		SetFragments([]string{"row"}, false).
		AddFragment("counter")
	return c.View(http.StatusOK, "board", boardPage{Tasks: []Task{task}, Open: b.open()})
}

func (b *board) remove(c hxforge.Context) error {
	id := hxforge.Param[int](c, "id")

	b.mu.Lock()
	i := b.indexOf(id)
	if i >= 0 {
		b.tasks = slices.Delete(b.tasks, i, i+1)
	}
	b.mu.Unlock()
	if i < 0 {
		return hxforge.NewHTTPError(http.StatusNotFound, "task not found")
	}

	// The row swaps itself away; only the counter travels out of band.
	c.HTMX().
		Trigger("tasks-changed", nil).
		Reswap(htmx.SwapDelete).
		SetFragments([]string{"empty", "counter"}, false)
	return c.View(http.StatusOK, "board", b.page(""))
}

// rename reads the new title from an hx-prompt answer.
// renameTitle reads the new title from the hx-prompt answer, or from a
// "title" form field when the rename is submitted by a form.
var renameTitle = hxforge.NewExtractor(hxforge.FromPrompt(), hxforge.FromForm("title"))

func (b *board) rename(c hxforge.Context) error {
	id := hxforge.Param[int](c, "id")
	title, ok := renameTitle.Extract(c)
	title = strings.TrimSpace(title)
	if !ok || title == "" {
		c.HTMX().Reswap(htmx.SwapNone)
		return c.NoContent(http.StatusNoContent)
	}

	b.mu.Lock()
	i := b.indexOf(id)
	if i >= 0 {
		b.tasks[i].Title = title
	}
	b.mu.Unlock()
	if i < 0 {
		return hxforge.NewHTTPError(http.StatusNotFound, "task not found")
	}

	c.HTMX().
		Retarget(fmt.Sprintf("#task-%d", id)).
		Reswap(htmx.SwapOuterHTML).
		Reselect(fmt.Sprintf("#task-%d", id)).
		SetFragments([]string{"rows"}, false)
	return c.View(http.StatusOK, "board", b.page(""))
}

func (b *board) startExport(c hxforge.Context) error {
	b.mu.Lock()
	job := &Job{ID: b.nextID}
	b.nextID++
	b.jobs[job.ID] = job
	b.mu.Unlock()

	c.HTMX().SetFragments([]string{"export"}, false)
	return c.View(http.StatusAccepted, "board", boardPage{Job: job})
}

// pollExport advances the job. Once it is complete the client is told to
// stop polling and the final markup replaces the progress bar.
func (b *board) pollExport(c hxforge.Context) error {
	id := hxforge.Param[int](c, "id")

	b.mu.Lock()
	job, ok := b.jobs[id]
	var snapshot Job
	if ok {
		job.Progress = min(job.Progress+b.step, 100)
		snapshot = *job
		if snapshot.Progress == 100 {
			delete(b.jobs, id)
		}
	}
	b.mu.Unlock()
	if !ok {
		return hxforge.NewHTTPError(http.StatusNotFound, "export not found")
	}

	if snapshot.Progress == 100 {
		c.HTMX().
			TriggerAfterSwap("export-finished", map[string]int{"id": snapshot.ID}).
			StopPolling(fmt.Sprintf(`<a id="export" href="/exports/%d.csv">Download export</a>`, snapshot.ID), nil)
		return nil
	}

	c.HTMX().SetFragments([]string{"export"}, false)
	return c.View(http.StatusOK, "board", boardPage{Job: &snapshot})
}

// about navigates to the about section without a full reload.
func (b *board) about(c hxforge.Context) error {
	if !c.IsHTMX() {
		return c.View(http.StatusOK, "board", boardPage{Notice: "hxdemo composes htmx responses on the server."})
	}
	return c.HTMX().LocationWithOptions(htmx.LocationOptions{
		Path:   "/",
		Target: "#notice",
		Select: "#notice",
		Values: map[string]string{"from": "about"},
	})
}

func (b *board) reset(c hxforge.Context) error {
	fresh := newBoard(b.step)

	b.mu.Lock()
	b.tasks, b.nextID, b.jobs = fresh.tasks, fresh.nextID, fresh.jobs
	b.mu.Unlock()

	if c.IsHTMX() {
		c.HTMX().Refresh()
		return nil
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (b *board) logout(c hxforge.Context) error {
	http.SetCookie(c.Response(), &http.Cookie{Name: "session", Value: "", Path: "/", MaxAge: -1})
	return c.Redirect(http.StatusSeeOther, "/")
}

func (b *board) page(query string) boardPage {
	b.mu.Lock()
	defer b.mu.Unlock()

	p := boardPage{Query: query}
	for _, t := range b.tasks {
		if query != "" && !strings.Contains(strings.ToLower(t.Title), strings.ToLower(query)) {
			continue
		}
		p.Tasks = append(p.Tasks, t)
	}
	p.Open = b.openLocked()
	return p
}

func (b *board) open() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.openLocked()
}

func (b *board) openLocked() int {
	n := 0
	for _, t := range b.tasks {
		if !t.Done {
			n++
		}
	}
	return n
}

func (b *board) indexOf(id int) int {
	return slices.IndexFunc(b.tasks, func(t Task) bool { return t.ID == id })
}
