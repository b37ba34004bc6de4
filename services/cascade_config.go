package services

// Parent types the cascade directory knows about.
const (
	ParentWorkspace = "workspace"
	ParentFolder    = "folder"
	ParentAsset     = "asset"
	ParentAd        = "ad"
)

// CascadeRelation describes one child collection a cascade walks into.
type CascadeRelation struct {
	Name             string
	Collection       Collection
	ForeignKey       string
	StorageKeyFields []string
}

// CleanupTarget is a collection swept by the trash purge.
type CleanupTarget struct {
	Name       string
	Collection Collection
}

// CascadeConfigService is the static directory of parent-child relations.
// Adding a new child type means adding an entry here; the engine itself
// never changes.
type CascadeConfigService struct {
	workspaces Collection
	folders    Collection
	assets     Collection
	ads        Collection
}

func NewCascadeConfigService(workspaces, folders, assets, ads Collection) *CascadeConfigService {
	return &CascadeConfigService{
		workspaces: workspaces,
		folders:    folders,
		assets:     assets,
		ads:        ads,
	}
}

// RelationsFor returns the child relations for a parent type. Assets and ads
// are leaves. Folders under a workspace cascade by workspace_id directly, so
// one level of traversal reaches everything.
func (c *CascadeConfigService) RelationsFor(parentType string) []CascadeRelation {
	switch parentType {
	case ParentWorkspace:
		return []CascadeRelation{
			{Name: "folders", Collection: c.folders, ForeignKey: "workspace_id"},
			{Name: "assets", Collection: c.assets, ForeignKey: "workspace_id", StorageKeyFields: []string{"source_link_key"}},
			{Name: "ads", Collection: c.ads, ForeignKey: "workspace_id"},
		}
	case ParentFolder:
		return []CascadeRelation{
			{Name: "assets", Collection: c.assets, ForeignKey: "folder_id", StorageKeyFields: []string{"source_link_key"}},
			{Name: "ads", Collection: c.ads, ForeignKey: "folder_id"},
		}
	default:
		return nil
	}
}

// CleanupTargets returns every collection the retention sweep purges.
func (c *CascadeConfigService) CleanupTargets() []CleanupTarget {
	return []CleanupTarget{
		{Name: "workspaces", Collection: c.workspaces},
		{Name: "folders", Collection: c.folders},
		{Name: "assets", Collection: c.assets},
		{Name: "ads", Collection: c.ads},
	}
}
