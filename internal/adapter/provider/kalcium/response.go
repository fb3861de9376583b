package kalcium

import "encoding/json"

// loginRequestToken is the body of the URL-token login.
type loginRequestToken struct {
	TenantID int    `json:"tenantId"`
	Token    string `json:"token"`
}

// loginRequestPassword is the body of the user/password login.
type loginRequestPassword struct {
	TenantID int    `json:"tenantId"`
	UserName string `json:"UserName"`
	Password string `json:"Password"`
}

// loginResponse is the user object returned by both logins.
type loginResponse struct {
	Token  string     `json:"token"`
	Groups []apiGroup `json:"groups"`
}

// apiGroup lists the termbases a user group may access.
type apiGroup struct {
	Termbases []apiGroupTermbase `json:"termbases"`
}

type apiGroupTermbase struct {
	TermbaseID int `json:"termbaseId"`
	IsEnabled  struct {
		Value bool `json:"value"`
	} `json:"isEnabled"`
}

// apiContent wraps the retrieval endpoint answer. Content is either an
// XML document or a JSON-encoded record list.
type apiContent struct {
	Content *string `json:"content"`
}

// apiLanguage is one system language.
type apiLanguage struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// apiTermbase is one termbase as listed by the terminology endpoint.
type apiTermbase struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	LanguageIDs []int  `json:"languageIds"`
}

// apiTermbaseSetting selects a termbase in search and analysis requests.
type apiTermbaseSetting struct {
	TermbaseID             int  `json:"termbaseId"`
	FilterID               int  `json:"filterId"`
	TermFilterID           int  `json:"termFilterId"`
	StylesheetID           int  `json:"stylesheetId"`
	PluginStylesheetID     *int `json:"pluginStylesheetId"`
	StylesheetIDForPreview *int `json:"stylesheetIdForPreview"`
}

// apiAnalyzeRequest is the body of the analyze-sentence endpoint.
type apiAnalyzeRequest struct {
	Source                         string               `json:"source"`
	SourceLanguageIDs              []int                `json:"sourceLanguageIds"`
	TargetLanguageIDs              []int                `json:"targetLanguageIds"`
	Mode                           int                  `json:"mode"`
	SimilarityRate                 float64              `json:"similarityRate"`
	UseStemmer                     bool                 `json:"useStemmer"`
	MatchCase                      bool                 `json:"matchCase"`
	IgnoreMatchCaseOnSentenceStart bool                 `json:"ignoreMatchCaseOnSentenceStart"`
	TermbaseSettings               []apiTermbaseSetting `json:"termbaseSettings"`
	IncludeEntries                 bool                 `json:"includeEntries"`
	EnableShowNotMatchingCompounds bool                 `json:"enableShowNotMatchingCompounds"`
	WordBreakCharacters            []string             `json:"wordBreakCharacters"`
}

// apiSearchRequest is the body of the search-raw endpoint.
type apiSearchRequest struct {
	Feature                      int                  `json:"feature"`
	Term                         string               `json:"term"`
	Mode                         int                  `json:"mode"`
	SimilarityRate               float64              `json:"similarityRate"`
	UseStemmer                   bool                 `json:"useStemmer"`
	StartIndex                   int                  `json:"startIndex"`
	MaxCount                     int                  `json:"maxCount"`
	SourceLanguageIDs            []int                `json:"sourceLanguageIds"`
	TargetLanguageIDs            []int                `json:"targetLanguageIds"`
	TermbaseSettings             []apiTermbaseSetting `json:"termbaseSettings"`
	TermbaseOrderingMode         int                  `json:"termbaseOrderingMode"`
	TermbaseOrder                []int                `json:"termbaseOrder"`
	DoHighlight                  bool                 `json:"doHighlight"`
	CollapseResult               bool                 `json:"collapseResult"`
	FilterMissingTargetLanguages bool                 `json:"filterMissingTargetLanguages"`
	UseMandatorySearchFilter     bool                 `json:"useMandatorySearchFilter"`
	GetAdditionalInfo            bool                 `json:"getAdditionalInfo"`
	EnableLog                    bool                 `json:"enableLog"`
}

// apiRef is an id wrapped in an object, as the terminology endpoints
// return entry ids.
type apiRef struct {
	ID json.Number `json:"id"`
}

type apiAnalysis struct {
	Hits    []apiHit   `json:"hits"`
	Entries []apiEntry `json:"entries"`
}

type apiHit struct {
	EntryID apiRef `json:"entryId"`
	Term    string `json:"term"`
}

type apiEntry struct {
	ID        apiRef             `json:"id"`
	Languages []apiLanguageBlock `json:"languages"`
}

type apiLanguageBlock struct {
	LanguageID int        `json:"languageId"`
	Fields     []apiField `json:"fields"`
	Terms      []apiTerm  `json:"terms"`
}

type apiTerm struct {
	Term   string     `json:"term"`
	Fields []apiField `json:"fields"`
}

type apiField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
