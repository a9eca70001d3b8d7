package domain

const (
	BlockAvatar   = "avatar"
	BlockArticle  = "article"
	BlockComments = "comments"
	BlockRelated  = "related"
	BlockTags     = "tags"
)

const (
	RequestStatusInProgress = "in-progress"
	RequestStatusSuccess    = "success"
	RequestStatusError      = "error"
)

func IsValidBlockType(value string) bool {
	switch value {
	case BlockAvatar, BlockArticle, BlockComments, BlockRelated, BlockTags:
		return true
	default:
		return false
	}
}
