package main

import (
	"inkpost/internal/content"
	blogSvc "inkpost/internal/domain/services/blog"
)

func text(kind content.Kind, body string) content.Section {
	sec := content.NewSection(kind, content.LayoutSingle)
	sec.Content = content.String(body)
	return sec
}

func seedPosts() []*blogSvc.CreateBlogRequest {
	list := text(content.KindText, "Sections\nInline markup\nDrag and drop")
	list.IsBulletList = content.Bool(true)
	list.ListStyle = content.ListStylePtr(content.ListDecimal)

	code := text(content.KindCode, "func main() {\n\tfmt.Println(\"hello\")\n}")
	code.Language = content.String("go")

	columns := content.NewSection(content.KindTwoColumn, content.LayoutDouble)
	columns.LeftContent = content.String("Write on the **left**.")
	columns.RightContent = content.String("Preview on the *right*.")
	columns.RightTextColor = content.String("#4b5563")

	welcome := content.Document{
		text(content.KindHeader, "Welcome to inkpost"),
		text(content.KindText, "Posts are built from **sections**. Each one can be styled on its own, and [links](https://go.dev) work too."),
		text(content.KindSubheader, "What you get"),
		list,
		columns,
		code,
	}

	draft := content.Document{
		text(content.KindHeader, "Notes in progress"),
		text(content.KindText, "This draft is only visible to its author."),
	}

	return []*blogSvc.CreateBlogRequest{
		{
			Title:     "Welcome to inkpost",
			Content:   content.Encode(welcome),
			Published: true,
		},
		{
			Title:     "A post from before sections",
			Content:   "Legacy posts are plain text.\nLine breaks are kept.",
			Excerpt:   content.String("An older post stored as plain text."),
			Published: true,
		},
		{
			Title:   "Notes in progress",
			Content: content.Encode(draft),
		},
	}
}
