package study

import "time"

// AddGrade validates draft and stores it as a new grade.
func (s *StudyService) AddGrade(draft GradeDraft) (Grade, error) {
	g, err := draft.Build(s.clock.Now())
	if err != nil {
		return Grade{}, err
	}
	g, _ = s.grades.Add(g)
	s.logger.Info("grade added", "id", g.ID, "subject", g.Subject, "score", g.Score, "weight", g.Weight)
	return g, nil
}

// DeleteGrade removes the grade with the given id and reports whether it existed.
func (s *StudyService) DeleteGrade(id string) bool {
	_, found := s.grades.Find(id)
	s.grades.Remove(id)
	if found {
		s.logger.Info("grade deleted", "id", id)
	}
	return found
}

// ListGrades returns the grades of subject, or all grades when subject is
// empty, sorted by date.
func (s *StudyService) ListGrades(subject string) []Grade {
	grades := s.grades.List()
	if subject != "" {
		key := SubjectKey(subject)
		var matching []Grade
		for _, g := range grades {
			if SubjectKey(g.Subject) == key {
				matching = append(matching, g)
			}
		}
		grades = matching
	}
	return SortByDate(grades, func(g Grade) time.Time { return g.Date })
}

// SubjectSummaries returns the weighted average of every subject.
func (s *StudyService) SubjectSummaries() []SubjectSummary {
	return GradesBySubject(s.grades.List())
}
