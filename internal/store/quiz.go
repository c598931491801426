package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/abhisek/studyloop/internal/quiz"
)

// QuizQuestions returns the stored quiz for a scope and date, in
// generation order. An empty slice means no quiz exists yet.
func (s *Store) QuizQuestions(ctx context.Context, scope quiz.Scope, date string) ([]quiz.Question, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT question, options, answer FROM quizzes
		 WHERE quiz_type = ? AND chapter_id = ? AND lesson_id = ? AND date = ?
		 ORDER BY position`,
		string(scope.Type), scope.ChapterID, scope.LessonID, date)
	if err != nil {
		return nil, fmt.Errorf("load quiz: %w", err)
	}
	defer rows.Close()

	var questions []quiz.Question
	for rows.Next() {
		var q quiz.Question
		var options string
		if err := rows.Scan(&q.Text, &options, &q.Answer); err != nil {
			return nil, fmt.Errorf("scan quiz question: %w", err)
		}
		if err := json.Unmarshal([]byte(options), &q.Options); err != nil {
			return nil, fmt.Errorf("decode quiz options: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// AddQuizQuestions stores a generated quiz in one transaction. If a
// quiz for the scope and date already exists, nothing is written, so a
// racing second generation cannot duplicate questions.
func (s *Store) AddQuizQuestions(ctx context.Context, scope quiz.Scope, date string, questions []quiz.Question) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		var count int
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM quizzes
			 WHERE quiz_type = ? AND chapter_id = ? AND lesson_id = ? AND date = ?`,
			string(scope.Type), scope.ChapterID, scope.LessonID, date).Scan(&count); err != nil {
			return fmt.Errorf("check quiz: %w", err)
		}
		if count > 0 {
			return nil
		}

		for i, q := range questions {
			options, err := json.Marshal(q.Options)
			if err != nil {
				return fmt.Errorf("encode quiz options: %w", err)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO quizzes (quiz_type, chapter_id, lesson_id, date, position, question, options, answer)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				string(scope.Type), scope.ChapterID, scope.LessonID, date, i+1,
				q.Text, string(options), q.Answer); err != nil {
				return fmt.Errorf("insert quiz question: %w", err)
			}
		}
		return nil
	})
}
