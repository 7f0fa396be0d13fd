package study

import "slices"

// AddChecklist validates draft and stores it as a new, empty checklist.
func (s *StudyService) AddChecklist(draft ChecklistDraft) (Checklist, error) {
	c, err := draft.Build()
	if err != nil {
		return Checklist{}, err
	}
	c, _ = s.checklists.Add(c)
	s.logger.Info("checklist added", "id", c.ID, "title", c.Title)
	return c, nil
}

// DeleteChecklist removes a checklist and its items and reports whether it existed.
func (s *StudyService) DeleteChecklist(id string) bool {
	_, found := s.checklists.Find(id)
	s.checklists.Remove(id)
	if found {
		s.logger.Info("checklist deleted", "id", id)
	}
	return found
}

// AddChecklistItem appends an unchecked item to a checklist. found is false
// when the checklist does not exist.
func (s *StudyService) AddChecklistItem(listID, content string) (ChecklistItem, bool, error) {
	item, err := buildChecklistItem(content)
	if err != nil {
		return ChecklistItem{}, false, err
	}

	var found bool
	s.checklists.Update(listID, func(cur Checklist) (Checklist, error) {
		found = true
		id := s.idgen.New()
		for id == "" || slices.ContainsFunc(cur.Items, func(it ChecklistItem) bool { return it.ID == id }) {
			id = s.idgen.New()
		}
		item.ID = id
		cur.Items = append(slices.Clone(cur.Items), item)
		return cur, nil
	})
	if !found {
		return ChecklistItem{}, false, nil
	}
	return item, true, nil
}

// ToggleChecklistItem flips the checked flag of an item and returns it.
func (s *StudyService) ToggleChecklistItem(listID, itemID string) (ChecklistItem, bool) {
	var (
		item  ChecklistItem
		found bool
	)
	s.checklists.Update(listID, func(cur Checklist) (Checklist, error) {
		i := slices.IndexFunc(cur.Items, func(it ChecklistItem) bool { return it.ID == itemID })
		if i < 0 {
			return cur, errSkip
		}
		found = true
		cur.Items = slices.Clone(cur.Items)
		cur.Items[i].Checked = !cur.Items[i].Checked
		item = cur.Items[i]
		return cur, nil
	})
	return item, found
}

// RemoveChecklistItem deletes an item and reports whether it existed.
func (s *StudyService) RemoveChecklistItem(listID, itemID string) bool {
	var found bool
	s.checklists.Update(listID, func(cur Checklist) (Checklist, error) {
		i := slices.IndexFunc(cur.Items, func(it ChecklistItem) bool { return it.ID == itemID })
		if i < 0 {
			return cur, errSkip
		}
		found = true
		cur.Items = slices.Delete(slices.Clone(cur.Items), i, i+1)
		return cur, nil
	})
	return found
}

// ListChecklists returns the checklists for the given tab sorted by target date.
func (s *StudyService) ListChecklists(filter ChecklistFilter) []Checklist {
	return SortChecklistsByDate(FilterChecklists(s.checklists.List(), filter, s.clock.Now()))
}

// FindChecklist returns the checklist with the given id.
func (s *StudyService) FindChecklist(id string) (Checklist, bool) {
	return s.checklists.Find(id)
}
