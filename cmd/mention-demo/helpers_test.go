package main

import (
	"github.com/iw2rmb/atmention/editor"
)

func editorConfigForTest(html string) editor.Config {
	return editor.Config{HTML: html, Style: editor.DefaultStyle()}
}
