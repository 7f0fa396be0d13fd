package study

import (
	"fmt"
	"slices"
)

// UploadFile stores an uploaded file. An empty folder means the root; any
// other folder must exist.
func (s *StudyService) UploadFile(upload FileUpload) (File, error) {
	f, err := upload.Build(s.clock.Now())
	if err != nil {
		return File{}, err
	}

	s.treeMu.Lock()
	defer s.treeMu.Unlock()

	if _, ok := s.folders.Find(f.FolderID); !ok {
		return File{}, fmt.Errorf("%w: %s", ErrUnknownFolder, f.FolderID)
	}
	f, _ = s.files.Add(f)
	s.logger.Info("file uploaded", "id", f.ID, "name", f.Name, "type", f.MediaType, "size", f.Size)
	return f, nil
}

// DeleteFile removes the file with the given id and reports whether it existed.
func (s *StudyService) DeleteFile(id string) bool {
	s.treeMu.Lock()
	defer s.treeMu.Unlock()

	_, found := s.files.Find(id)
	s.files.Remove(id)
	if found {
		s.logger.Info("file deleted", "id", id)
	}
	return found
}

// ToggleStar flips the starred flag of a file and returns the result.
func (s *StudyService) ToggleStar(id string) (File, bool) {
	var (
		updated File
		found   bool
	)
	s.files.Update(id, func(cur File) (File, error) {
		found = true
		cur.Starred = !cur.Starred
		updated = cur
		return cur, nil
	})
	return updated, found
}

// DownloadFile returns a file and its decoded payload.
func (s *StudyService) DownloadFile(id string) (File, []byte, error) {
	f, ok := s.files.Find(id)
	if !ok {
		return File{}, nil, fmt.Errorf("file %s: %w", id, ErrNotFound)
	}
	_, payload, err := DecodeDataURL(f.Content)
	if err != nil {
		return File{}, nil, fmt.Errorf("decoding content of %s: %w", id, err)
	}
	return f, payload, nil
}

// ListFiles returns the files in folderID whose name matches query,
// narrowed to kind. An empty folder means the root.
func (s *StudyService) ListFiles(folderID, query string, kind FileKind) []File {
	if folderID == "" {
		folderID = RootFolderID
	}
	return FilesByKind(FilesInFolder(s.files.List(), folderID, query), kind)
}

// StarredFiles returns every starred file regardless of folder.
func (s *StudyService) StarredFiles() []File {
	var out []File
	for _, f := range s.files.List() {
		if f.Starred {
			out = append(out, f)
		}
	}
	return out
}

// CreateFolder stores a new folder under an existing parent.
func (s *StudyService) CreateFolder(draft FolderDraft) (Folder, error) {
	folder, err := draft.Build()
	if err != nil {
		return Folder{}, err
	}

	s.treeMu.Lock()
	defer s.treeMu.Unlock()

	if _, ok := s.folders.Find(folder.ParentID); !ok {
		return Folder{}, fmt.Errorf("%w: %s", ErrUnknownFolder, folder.ParentID)
	}
	folder, _ = s.folders.Add(folder)
	s.logger.Info("folder created", "id", folder.ID, "name", folder.Name, "parent", folder.ParentID)
	return folder, nil
}

// DeleteFolder removes an empty folder and reports whether it existed.
// The root and folders that still own files or subfolders are rejected.
func (s *StudyService) DeleteFolder(id string) (bool, error) {
	if id == RootFolderID {
		return false, ErrRootFolder
	}

	s.treeMu.Lock()
	defer s.treeMu.Unlock()

	if _, ok := s.folders.Find(id); !ok {
		return false, nil
	}
	if slices.ContainsFunc(s.files.List(), func(f File) bool { return f.FolderID == id }) {
		return true, fmt.Errorf("%w: %s", ErrFolderNotEmpty, id)
	}
	if slices.ContainsFunc(s.folders.List(), func(f Folder) bool { return f.ParentID == id }) {
		return true, fmt.Errorf("%w: %s", ErrFolderNotEmpty, id)
	}

	s.folders.Remove(id)
	s.logger.Info("folder deleted", "id", id)
	return true, nil
}

// ListFolders returns the direct children of parentID. An empty parent
// means the root.
func (s *StudyService) ListFolders(parentID string) []Folder {
	if parentID == "" {
		parentID = RootFolderID
	}
	var out []Folder
	for _, f := range s.folders.List() {
		if f.ParentID == parentID {
			out = append(out, f)
		}
	}
	return out
}

// FolderPath returns the folders from the root down to id.
func (s *StudyService) FolderPath(id string) ([]Folder, error) {
	return FolderPath(s.folders.List(), id)
}
