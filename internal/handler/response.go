package handler

import "picboard/internal/model"

// Converters from domain values to response DTOs. Slices are never nil so
// empty collections encode as [].

func toImageResponses(images []model.Image, urlFor func(string) string) []model.ImageResponse {
	out := make([]model.ImageResponse, len(images))
	for i, img := range images {
		out[i] = model.ImageResponse{ID: img.ID, File: urlFor(img.File), PostID: img.PostID}
	}
	return out
}

func toPostResponse(p model.PostView, urlFor func(string) string) model.PostResponse {
	return model.PostResponse{
		ID:        p.ID,
		Content:   p.Content,
		UserID:    p.UserID,
		CreatedAt: p.CreatedAt,
		Images:    toImageResponses(p.Images, urlFor),
		User:      p.Author,
		Count:     model.PostCounts{Likes: p.LikeCount, Comments: p.CommentCount},
		Liked:     p.Liked,
	}
}

func toPostResponses(posts []model.PostView, urlFor func(string) string) []model.PostResponse {
	out := make([]model.PostResponse, len(posts))
	for i, p := range posts {
		out[i] = toPostResponse(p, urlFor)
	}
	return out
}

func toPostDetailResponse(p model.PostView, urlFor func(string) string) model.PostDetailResponse {
	return model.PostDetailResponse{
		PostResponse: toPostResponse(p, urlFor),
		Comments:     toCommentResponses(p.Comments),
	}
}

func toCommentResponse(c model.Comment) model.CommentResponse {
	return model.CommentResponse{
		ID:        c.ID,
		Content:   c.Content,
		UserID:    c.UserID,
		PostID:    c.PostID,
		CreatedAt: c.CreatedAt,
		User:      c.Author,
	}
}

func toCommentResponses(comments []model.Comment) []model.CommentResponse {
	out := make([]model.CommentResponse, len(comments))
	for i, c := range comments {
		out[i] = toCommentResponse(c)
	}
	return out
}

func toLikeResponse(l model.Like) model.LikeResponse {
	return model.LikeResponse{ID: l.ID, UserID: l.UserID, PostID: l.PostID}
}

func toLikeWithUserResponses(likes []model.LikeView) []model.LikeWithUserResponse {
	out := make([]model.LikeWithUserResponse, len(likes))
	for i, l := range likes {
		out[i] = model.LikeWithUserResponse{LikeResponse: toLikeResponse(l.Like), User: l.User}
	}
	return out
}

func toProfileResponse(p *model.Profile) model.ProfileResponse {
	return model.ProfileResponse{
		ID:        p.ID,
		Username:  p.Username,
		Fullname:  p.Fullname,
		CreatedAt: p.CreatedAt,
		Count: model.ProfileCounts{
			Posts:    p.PostCount,
			Likes:    p.LikeCount,
			Comments: p.CommentCount,
		},
	}
}
