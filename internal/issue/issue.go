// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

// Id identifies a troubleshooting card in the catalog.
type Id int

const (
	ToolNotInstalledId Id = iota + 1
	NotLoggedInId
	ManifestNotFoundId
	ArtifactMissingId
)

// MarkdownMsg is the markdown body of a card.
type MarkdownMsg string

// HttpLink is a documentation or external URL.
type HttpLink string

// Issue is a troubleshooting card for a known hard failure.
type Issue struct {
	id       Id
	mdMsg    MarkdownMsg
	docLinks []HttpLink
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// Render renders the card as styled terminal output.
func (i *Issue) Render(stylePath string) (string, error) {
	md := string(i.mdMsg)
	if len(i.docLinks) > 0 {
		md += "\n\n## See also\n"
		for _, link := range i.docLinks {
			md += "- " + string(link) + "\n"
		}
	}
	return render(md, stylePath)
}

// Lookup returns the card for id, or nil when no card exists.
func Lookup(id Id) *Issue {
	return catalog[id]
}

// render is a test seam over glamour.
var render = glamour.Render

var (
	toolNotInstalledIssue = &Issue{
		id: ToolNotInstalledId,
		mdMsg: `
# Packaging tool not found

lzcship drives the external packaging CLI but could not find it on your PATH.

## Things you can try
- Install the packaging CLI:
~~~
$ npm install -g @lazycatcloud/lzc-cli
~~~
- If it is installed under a different name, point lzcship at it:
~~~yaml
# ~/.config/lzcship/config.yaml
tool:
  binary: /path/to/lzc-cli
~~~`,
	}

	notLoggedInIssue = &Issue{
		id: NotLoggedInId,
		mdMsg: `
# Not logged in to the app store

Publishing requires an authenticated app store session.

## Things you can try
- Log in and retry:
~~~
$ lzc-cli appstore login
~~~
- Check the current session:
~~~
$ lzc-cli appstore whoami
~~~`,
	}

	manifestNotFoundIssue = &Issue{
		id: ManifestNotFoundId,
		mdMsg: `
# Project files missing

The current directory does not look like a packaged application project.
A project needs an app manifest, a build file, and an icon.

## Expected layout
~~~
myapp/
├── lzc-manifest.yml
├── lzc-build.yml
└── icon.png
~~~

## Things you can try
- Run from the project root, or pass it explicitly:
~~~
$ lzcship -C /path/to/myapp validate
~~~`,
	}

	artifactMissingIssue = &Issue{
		id: ArtifactMissingId,
		mdMsg: `
# Package artifact not found

Publishing needs a built package, but no artifact exists for this project.

## Things you can try
- Build the package first:
~~~
$ lzcship build
~~~
- Or run the whole release pipeline:
~~~
$ lzcship all
~~~`,
	}

	catalog = map[Id]*Issue{
		ToolNotInstalledId: toolNotInstalledIssue,
		NotLoggedInId:      notLoggedInIssue,
		ManifestNotFoundId: manifestNotFoundIssue,
		ArtifactMissingId:  artifactMissingIssue,
	}
)
