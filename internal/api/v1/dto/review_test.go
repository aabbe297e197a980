package dto

import (
	"encoding/json"
	"testing"
	"time"

	"app/internal/model"
)

func TestNewReviewResponseFlattensCourse(t *testing.T) {
	row := model.UserCourseReview{
		Review: model.Review{
			ID:         "r1",
			UserID:     "u1",
			CourseID:   "c1",
			Rating:     4,
			ReviewText: "Windy but fair",
			DatePlayed: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		CourseName:     "A",
		CourseLocation: "X",
	}

	resp := NewReviewResponse(row)

	if resp.ID != "r1" || resp.CourseID != "c1" || resp.Rating != 4 {
		t.Fatalf("unexpected mapping: %+v", resp)
	}
	if resp.DatePlayed != "2024-01-01" {
		t.Fatalf("expected date_played '2024-01-01', got %q", resp.DatePlayed)
	}
	if resp.Course.Name != "A" || resp.Course.Location != "X" {
		t.Fatalf("expected joined course fields under course, got %+v", resp.Course)
	}
}

func TestNewReviewResponsesPreservesOrder(t *testing.T) {
	rows := []model.UserCourseReview{
		{Review: model.Review{ID: "2", DatePlayed: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}, CourseName: "B", CourseLocation: "Y"},
		{Review: model.Review{ID: "1", DatePlayed: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}, CourseName: "A", CourseLocation: "X"},
	}

	out := NewReviewResponses(rows)

	if len(out) != 2 || out[0].ID != "2" || out[1].ID != "1" {
		t.Fatalf("expected order preserved, got %+v", out)
	}
	if out[0].Course.Name != "B" || out[1].Course.Name != "A" {
		t.Fatalf("course payloads attached to wrong rows: %+v", out)
	}
}

func TestNewReviewResponsesEmptyEncodesAsArray(t *testing.T) {
	out := NewReviewResponses(nil)
	if out == nil {
		t.Fatal("expected non-nil slice for empty input")
	}

	body, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(body) != "[]" {
		t.Fatalf("expected [] for empty listing, got %s", body)
	}
}

func TestNewReviewResponseWireShape(t *testing.T) {
	row := model.UserCourseReview{
		Review: model.Review{
			ID:         "r1",
			CourseID:   "c1",
			Rating:     5,
			ReviewText: "Best round of the year",
			DatePlayed: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		CourseName:     "B",
		CourseLocation: "Y",
	}

	body, err := json.Marshal(NewReviewResponse(row))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"id":"r1","course_id":"c1","rating":5,"review_text":"Best round of the year","date_played":"2024-03-01","course":{"name":"B","location":"Y"}}`
	if string(body) != want {
		t.Fatalf("unexpected wire shape:\n got %s\nwant %s", body, want)
	}
}
