package mocks

import "mockui/internal/model"

// Table maps exact request URLs, query string included, to canned payloads.
type Table map[string]any

func Default() Table {
	return Table{
		"api/user": model.User{ID: 1, Login: "Robin Bobin"},
		"api/articles?random=1&userid=1": []model.Article{
			{ID: 2, Text: "Article 2"},
		},
		"api/related?articleid=2": []model.Article{
			{ID: 3, Text: "Article 3"},
			{ID: 4, Text: "Article 4"},
		},
		"api/tags?articleid=2": []model.Tag{
			{ID: 1, Tag: "tag 1"},
			{ID: 2, Tag: "tag 2"},
		},
		"api/comments?articleid=2": []model.Comment{
			{ID: 1, Comment: "Comment 1"},
			{ID: 2, Comment: "Comment 2"},
		},
	}
}

// Lookup never returns nil: unknown URLs resolve to an empty object.
func (t Table) Lookup(url string) any {
	if payload, ok := t[url]; ok && payload != nil {
		return payload
	}
	return map[string]any{}
}
