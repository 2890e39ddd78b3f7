// Package memhost implements host.Host as an in-memory display tree.
//
// A Document owns the nodes it creates and records every mutating call in an
// ordered operation log, which makes it the reference host for tests, the
// CLI, and the live demo server:
//
//	doc := memhost.NewDocument()
//	r := vdom.NewRenderer(doc)
//	_ = r.Mount(ctx, vdom.Div(vdom.Text("hi")), doc.Body())
//	fmt.Println(doc.HTML(doc.Body()))  // <body><div>hi</div></body>
//	fmt.Println(doc.Ops())             // createElement div, createText "hi", ...
//
// Documents are not safe for concurrent use.
package memhost
