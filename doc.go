// Package upyun provides a client for the UpYun cloud storage REST API.
//
// The client signs every request with the operator's credential digest and
// exposes the core storage operations: upload, download, file info, delete,
// mkdir, directory listing, space usage, and CDN cache purge.
//
// # Key Components
//
//   - Client: issues signed HTTP requests against the REST API
//   - Signer: computes the two authorization variants (REST and purge)
//   - DirCursor: resumable continuation cursor for directory listings
//   - TransformOptions: typed image-processing parameters for uploads
//
// # Example Usage
//
//	client, err := upyun.New(&upyun.Config{
//	    Bucket:   "demobucket",
//	    Operator: "operator",
//	    Password: "password",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Upload a local file
//	result, err := client.UploadFile(ctx, "./photo.jpg", "/album/photo.jpg", nil)
//
//	// List a directory page by page
//	cursor := upyun.NewDirCursor()
//	_, err = client.ListDir(ctx, "/album/", cursor, func(e upyun.DirEntry) error {
//	    fmt.Println(e.Name)
//	    return nil
//	})
//
// Operations are synchronous and safe for concurrent use from multiple
// goroutines; a DirCursor, however, must only have one call in flight at a
// time. See the cli package for profile-based configuration and the upyuntest
// package for an in-memory fake server usable in tests.
package upyun
