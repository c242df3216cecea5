// Package serialization saves and loads scalar model checkpoints.
//
//	Format Structure:
//	  [0x00: 4 bytes  Magic "GRAD"]
//	  [0x04: 4 bytes  Version (uint32 LE)]
//	  [0x08: 4 bytes  Flags (uint32 LE)]
//	  [0x0C: 4 bytes  Reserved]
//	  [0x10: 8 bytes  Header Size (uint64 LE)]
//	  [0x18: 8 bytes  Data Size (uint64 LE)]
//	  [0x20: 32 bytes SHA-256 of the data section]
//	  [0x40: Header JSON]
//	  [padding to 64-byte boundary]
//	  [Data: float64 LE, parameters then optimizer state, in header order]
//
// Example usage:
//
//	ckpt := &serialization.Checkpoint{
//	    Params:         nn.StateDict(model),
//	    OptimizerState: opt.StateDict(),
//	}
//	if err := serialization.Save("model.grad", ckpt); err != nil {
//	    log.Fatal(err)
//	}
//
//	loaded, err := serialization.Load("model.grad")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = nn.LoadStateDict(model, loaded.Params)
package serialization
