package model

type User struct {
	ID    int    `json:"id"`
	Login string `json:"login"`
}

type Article struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

type Tag struct {
	ID  int    `json:"id"`
	Tag string `json:"tag"`
}

type Comment struct {
	ID      int    `json:"id"`
	Comment string `json:"comment"`
}
