// Package ainative provides the low-level client for the AINative cloud
// platform: authentication (API key plus optional HMAC request signing),
// request dispatch with bounded retry, and typed error mapping.
//
// Most callers use it through the resource packages:
//
//	import (
//		"github.com/ainative/ainative-go/pkg/ainative"
//		"github.com/ainative/ainative-go/pkg/zerodb"
//	)
//
//	client, err := ainative.NewClient(ainative.Config{APIKey: "sk-..."})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	db := zerodb.NewClient(client)
//	results, err := db.Vectors.Search(ctx, zerodb.SearchVectorsParams{
//		ProjectID: "proj-123",
//		Vector:    embedding,
//	})
//
// Errors returned by the SDK are *ainative.Error values carrying a stable
// code (AUTH_ERROR, RATE_LIMIT, ...); inspect them with errors.As or the
// AsCode helper.
package ainative
