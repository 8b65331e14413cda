package domain

import "fmt"

var instagramSchema = Schema{
	Platform: PlatformInstagram,
	Fields: []FieldSpec{
		{Column: "post_id", Kind: KindString, Candidates: []Path{{"id"}, {"shortCode"}}},
		{Column: "usuario", Kind: KindString, Candidates: []Path{{"ownerUsername"}, {"owner", "username"}}},
		{Column: "caption", Kind: KindString, Candidates: []Path{{"caption"}}},
		{Column: "hashtags", Kind: KindList, Candidates: []Path{{"hashtags"}}},
		{Column: "likes", Kind: KindInt, Candidates: []Path{{"likesCount"}}},
		{Column: "comments", Kind: KindInt, Candidates: []Path{{"commentsCount"}}},
		{Column: "fecha", Kind: KindString},
		{Column: "url", Kind: KindString, Candidates: []Path{{"url"}}},
		{Column: "keyword", Kind: KindString, Context: ContextKeyword},
	},
	DateCandidates: []Path{{"timestamp"}},
	TextColumn:     "caption",
	DateColumn:     "fecha",
	DedupeKey:      []string{"post_id", "keyword"},
}

var tiktokSchema = Schema{
	Platform: PlatformTikTok,
	Fields: []FieldSpec{
		{Column: "video_id", Kind: KindString, Candidates: []Path{{"id"}}},
		{Column: "usuario", Kind: KindString, Candidates: []Path{{"authorMeta", "name"}}},
		{Column: "caption", Kind: KindString, Candidates: []Path{{"text"}}},
		{Column: "hashtags", Kind: KindList, Candidates: []Path{{"hashtags"}}, ItemKey: "name"},
		{Column: "views", Kind: KindInt, Candidates: []Path{{"playCount"}}},
		{Column: "likes", Kind: KindInt, Candidates: []Path{{"diggCount"}}},
		{Column: "fecha", Kind: KindString},
		{Column: "url", Kind: KindString, Candidates: []Path{{"webVideoUrl"}}},
		{Column: "keyword", Kind: KindString, Context: ContextKeyword},
	},
	DateCandidates: []Path{{"createTime"}, {"createTimeISO"}},
	TextColumn:     "caption",
	DateColumn:     "fecha",
	DedupeKey:      []string{"video_id", "keyword"},
}

var twitterSchema = Schema{
	Platform: PlatformTwitter,
	Fields: []FieldSpec{
		{Column: "tweet_id", Kind: KindString, Candidates: []Path{{"id_str"}, {"id"}}},
		{Column: "usuario", Kind: KindString, Candidates: []Path{{"user", "screen_name"}, {"author", "userName"}}},
		{Column: "texto", Kind: KindString, Candidates: []Path{{"full_text"}, {"text"}, {"fullText"}}},
		{Column: "hashtags", Kind: KindList, Candidates: []Path{{"entities", "hashtags"}}, ItemKey: "text"},
		{Column: "likes", Kind: KindInt, Candidates: []Path{{"favorite_count"}, {"likeCount"}}},
		{Column: "retweets", Kind: KindInt, Candidates: []Path{{"retweet_count"}, {"retweetCount"}}},
		{Column: "replies", Kind: KindInt, Candidates: []Path{{"reply_count"}, {"replyCount"}}},
		{Column: "views", Kind: KindInt, Candidates: []Path{{"view_count"}, {"viewCount"}}},
		{Column: "fecha", Kind: KindString},
		{Column: "url", Kind: KindString, Derive: tweetURL, Candidates: []Path{{"url"}, {"twitterUrl"}}},
		{Column: "keyword", Kind: KindString, Context: ContextKeyword},
	},
	DateCandidates: []Path{{"created_at"}, {"createdAt"}},
	TextColumn:     "texto",
	DateColumn:     "fecha",
	DedupeKey:      []string{"tweet_id", "keyword"},
}

var facebookPostsSchema = Schema{
	Platform: PlatformFacebookPosts,
	Fields: []FieldSpec{
		{Column: "post_id", Kind: KindString, Candidates: []Path{{"postId"}, {"id"}}},
		{Column: "organization_name", Kind: KindString, Context: ContextOrganization},
		{Column: "page_name", Kind: KindString, Candidates: []Path{{"pageName"}}, Context: ContextOrganization},
		{Column: "texto", Kind: KindString, Candidates: []Path{{"text"}, {"postText"}}},
		{Column: "likes", Kind: KindInt, Candidates: []Path{{"likes"}, {"likeCount"}}},
		{Column: "comments", Kind: KindInt, Candidates: []Path{{"comments"}, {"commentCount"}}},
		{Column: "shares", Kind: KindInt, Candidates: []Path{{"shares"}, {"shareCount"}}},
		{Column: "fecha", Kind: KindString},
		{Column: "url", Kind: KindString, Candidates: []Path{{"url"}, {"postUrl"}}},
		{Column: "keywords_matched", Kind: KindString},
	},
	DateCandidates: []Path{{"time"}, {"date"}},
	TextColumn:     "texto",
	DateColumn:     "fecha",
	MatchesColumn:  "keywords_matched",
	RequireText:    true,
	KeywordFilter:  true,
	DedupeKey:      []string{"post_id", "organization_name"},
}

var facebookPagesSchema = Schema{
	Platform: PlatformFacebookPages,
	Fields: []FieldSpec{
		{Column: "nombre_organizacion", Kind: KindString},
		{Column: "page_name", Kind: KindString, Candidates: []Path{{"title"}, {"pageName"}}},
		{Column: "page_url", Kind: KindString, Candidates: []Path{{"pageUrl"}, {"facebookUrl"}}},
		{Column: "page_id", Kind: KindString, Candidates: []Path{{"pageId"}}},
		{Column: "categoria", Kind: KindList, Candidates: []Path{{"categories"}}},
		{Column: "likes", Kind: KindInt, Candidates: []Path{{"likes"}}},
		{Column: "followers", Kind: KindInt, Candidates: []Path{{"followers"}}},
		{Column: "intro", Kind: KindString, Candidates: []Path{{"intro"}}},
		{Column: "website", Kind: KindFirst, Candidates: []Path{{"websites"}, {"website"}}},
		{Column: "email", Kind: KindString, Candidates: []Path{{"email"}}},
		{Column: "telefono", Kind: KindString, Candidates: []Path{{"phone"}, {"phoneNumber"}}},
		{Column: "direccion", Kind: KindString, Candidates: []Path{{"address"}}},
		{Column: "rating", Kind: KindString, Candidates: []Path{{"rating"}}},
		{Column: "rating_count", Kind: KindInt, Candidates: []Path{{"ratingCount"}}},
		{Column: "messenger", Kind: KindString, Candidates: []Path{{"messenger"}}},
		{Column: "checkins", Kind: KindInt, Candidates: []Path{{"checkins"}}},
		{Column: "ad_library_id", Kind: KindString, Candidates: []Path{{"adLibraryPageId"}}},
		{Column: "ad_status", Kind: KindFlag, Candidates: []Path{{"adsAreRunning"}}},
		{Column: "profile_picture_url", Kind: KindString, Candidates: []Path{{"profilePictureUrl"}}},
		{Column: "cover_photo_url", Kind: KindString, Candidates: []Path{{"coverPhotoUrl"}}},
	},
	DedupeKey:          []string{"page_url"},
	OrganizationColumn: "nombre_organizacion",
	URLColumns:         []string{"pageUrl", "facebookUrl"},
}

var schemas = map[Platform]Schema{
	PlatformInstagram:     instagramSchema,
	PlatformTikTok:        tiktokSchema,
	PlatformTwitter:       twitterSchema,
	PlatformFacebookPosts: facebookPostsSchema,
	PlatformFacebookPages: facebookPagesSchema,
}

// SchemaFor returns the canonical schema of platform.
func SchemaFor(p Platform) (Schema, error) {
	s, ok := schemas[p]
	if !ok {
		return Schema{}, fmt.Errorf("unknown platform %q", p)
	}
	return s, nil
}

// tweetURL rebuilds the status URL from the embedded user object.
func tweetURL(raw RawRecord) string {
	id := raw.Text("id_str")
	user, ok := raw.Map("user")
	if !ok || id == "" {
		return ""
	}
	name := user.Text("screen_name")
	if name == "" {
		name = "i"
	}
	return fmt.Sprintf("https://twitter.com/%s/status/%s", name, id)
}
