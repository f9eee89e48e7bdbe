// Package secure keeps sensitive strings, such as a MongoDB connection
// string with embedded credentials, encrypted in memory between the moment
// they are read from the secret store and the moment the driver needs them.
//
// It wraps memguard enclaves:
//
//	s := secure.NewString(uri)
//	defer s.Destroy()
//
//	err := s.Use(func(plain string) error {
//	    return connect(plain)
//	})
//
// Call memguard.Purge (via secure.Purge) at process exit to wipe any
// remaining key material.
package secure
