package feather

// CmdCacheType memoizes a command-name token's resolution, valid only as
// long as the interpreter's procEpoch matches: command creation, rename,
// or deletion bumps procEpoch, invalidating every outstanding cache.
type CmdCacheType struct {
	epoch int64
	cmd   *Command
}

func (t *CmdCacheType) Name() string         { return "command-cache" }
func (t *CmdCacheType) UpdateString() string { fatalf("feather: command-cache has no string form"); return "" }
func (t *CmdCacheType) Dup() ObjType         { return &CmdCacheType{} }

// lookupCommandCached resolves a command-name token against ip's command
// table, using and maintaining a CmdCacheType when possible.
func lookupCommandCached(nameObj *Obj, ip *Interp) *Command {
	if cc, ok := nameObj.intrep.(*CmdCacheType); ok && cc.epoch == ip.procEpoch {
		return cc.cmd
	}
	cmd, ok := ip.commands.Get(nameObj.String())
	if !ok {
		return nil
	}
	nameObj.intrep = &CmdCacheType{epoch: ip.procEpoch, cmd: cmd}
	return cmd
}
