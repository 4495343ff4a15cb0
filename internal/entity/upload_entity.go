package entity

import "time"

type Upload struct {
	Id               uint
	Filename         string
	OriginalFilename string
	FilePath         string
	FileHash         string
	SessionId        string
	UploadDate       time.Time
	FileSize         int64
	IsCached         bool

	// Populated only by queries that preload summaries.
	Summaries []*Summary
}

// FirstSummary returns the earliest summary or nil.
func (u *Upload) FirstSummary() *Summary {
	if u == nil || len(u.Summaries) == 0 {
		return nil
	}
	first := u.Summaries[0]
	for _, s := range u.Summaries[1:] {
		if s.Id < first.Id {
			first = s
		}
	}
	return first
}
