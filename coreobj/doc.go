// Package coreobj implements a small prototype-based object model. Classes are
// built by extending an existing class, starting from the root CoreObject:
//
//	animal := coreobj.CoreObject.Extend(coreobj.Members{
//		"init":  coreobj.FieldInit("name"),
//		"sound": coreobj.NewString("..."),
//	})
//	horse := animal.Extend(coreobj.Members{"sound": coreobj.NewString("Neighhhhh!")})
//	horsey, err := horse.Create(coreobj.NewString("Horsey"))
//
// Every class owns a prototype object that delegates to its parent's
// prototype. Instances delegate to their class prototype, so member lookups
// walk instance, class, parent class and so on until a match is found.
// Assignments always land on the receiving object and never touch a
// prototype.
//
// The initializer is the member named `init`. It is resolved once when a class
// is extended: an explicit `init` member wins, otherwise the parent's is
// inherited, otherwise the class gets a no-op initializer.
package coreobj
