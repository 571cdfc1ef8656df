package domain

// LinkItem is one saved short link inside an owner's collection.
// Code is unique within a single owner's collection.
type LinkItem struct {
	ID          string `json:"id"`
	CreatedAt   int64  `json:"createdAt"`
	Date        string `json:"date"`
	OriginalURL string `json:"originalUrl"`
	ShortURL    string `json:"shortUrl"`
	Code        string `json:"code"`
	Source      string `json:"source"`
	Clicks      int64  `json:"clicks"`
	Active      bool   `json:"active"`
	OwnerKey    string `json:"emailKey"`
	Email       string `json:"email"`
}

// LinkList holds an owner's link items keyed by child ID.
type LinkList map[string]LinkItem

func (l *LinkList) UnmarshalJSON(data []byte) error {
	m, err := unmarshalKeyed[LinkItem](data)
	if err != nil {
		return err
	}
	*l = m
	return nil
}

// FindByCode returns the item carrying code, if any.
func (l LinkList) FindByCode(code string) (LinkItem, bool) {
	for _, it := range l {
		if it.Code == code {
			return it, true
		}
	}
	return LinkItem{}, false
}

// LinkCollection is one per-source group of links with its counters.
type LinkCollection struct {
	TotalLinks  int64    `json:"totalLinks"`
	ActiveLinks int64    `json:"activeLinks"`
	TotalClicks int64    `json:"totalClicks"`
	List        LinkList `json:"list"`
}

// NewLinkCollection returns the zero-state collection.
func NewLinkCollection() LinkCollection {
	return LinkCollection{List: LinkList{}}
}

// GlobalLink is the cross-account allLinks/<code> index entry. TotalUses
// counts every save attempt for the code, dedup hits included.
type GlobalLink struct {
	Code           string          `json:"code"`
	OriginalURL    string          `json:"originalUrl"`
	ShortURL       string          `json:"shortUrl"`
	FirstCreatedAt int64           `json:"firstCreatedAt"`
	CreatedAt      int64           `json:"createdAt"`
	LastUsedAt     int64           `json:"lastUsedAt"`
	TotalUses      int64           `json:"totalUses"`
	Users          map[string]bool `json:"users"`
}
