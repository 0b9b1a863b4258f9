package dto

import "teamfeed/model"

type FeedResponse struct {
	Items []model.DisplayPost `json:"items"`
}

type LikeResponse struct {
	Message string `json:"message"`
	PostID  string `json:"postId"`
	IsLiked bool   `json:"isLiked"`
}
