package routing

import (
	"sort"

	apperrors "metro-ticketing/pkg/app_errors"
	"metro-ticketing/pkg/logger"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// StationNode 快照中的車站
type StationNode struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Link 快照中的連線（無向邊，record 方向依資料庫原樣保留）
type Link struct {
	FromCode string `json:"from_code"`
	ToCode   string `json:"to_code"`
	LineCode string `json:"line_code"`
	LineName string `json:"line_name"`
}

// NetworkSnapshot 路網快照：快取與圖建構共用的資料形狀。
// 只含啟用路線與否由產生快照的一方決定。
type NetworkSnapshot struct {
	Stations []StationNode `json:"stations"`
	Links    []Link        `json:"links"`
}

type pair [2]string

// Network 由快照建出的無向路網圖。每次都從快照重建，不在圖層快取。
type Network struct {
	g     *simple.UndirectedGraph
	ids   map[string]int64
	codes []string
	links map[pair]Link
}

// NewNetwork 建圖。節點 ID 依站碼字典序配發，讓等長路徑的選擇有固定的
// tie-break 規則（見 ShortestPath）。沒有連線的車站仍是圖中的孤立節點。
func NewNetwork(snap NetworkSnapshot) *Network {
	codes := make([]string, 0, len(snap.Stations))
	for _, st := range snap.Stations {
		codes = append(codes, st.Code)
	}
	sort.Strings(codes)

	n := &Network{
		g:     simple.NewUndirectedGraph(),
		ids:   make(map[string]int64, len(codes)),
		codes: codes,
		links: make(map[pair]Link, len(snap.Links)),
	}
	for i, code := range codes {
		n.ids[code] = int64(i)
		n.g.AddNode(simple.Node(int64(i)))
	}

	for _, link := range snap.Links {
		from, okFrom := n.ids[link.FromCode]
		to, okTo := n.ids[link.ToCode]
		if !okFrom || !okTo || from == to {
			// 連線指向不存在的車站(或自己)屬於資料不一致，跳過但留下紀錄
			logger.WithComponent("routing").Warn("skipping inconsistent connection",
				zap.String("from", link.FromCode),
				zap.String("to", link.ToCode),
				zap.String("line", link.LineCode),
			)
			continue
		}
		n.g.SetEdge(n.g.NewEdge(simple.Node(from), simple.Node(to)))

		// 同站對的多條連線：顯示用的路線歸屬取第一筆
		key := pair{link.FromCode, link.ToCode}
		if _, ok := n.links[key]; !ok {
			n.links[key] = link
		}
	}

	return n
}

// ShortestPath 回傳 source 到 destination 邊數最少的路徑（站碼序列）。
// BFS 依節點 ID 升冪走訪鄰居，等長路徑中回傳站碼字典序最小者，結果可重現。
// 站不在圖中或不連通時回傳 ErrNoPath。
func (n *Network) ShortestPath(source, destination string) ([]string, error) {
	src, ok := n.ids[source]
	if !ok {
		return nil, apperrors.ErrNoPath
	}
	dst, ok := n.ids[destination]
	if !ok {
		return nil, apperrors.ErrNoPath
	}
	if src == dst {
		return []string{source}, nil
	}

	parent := map[int64]int64{src: src}
	frontier := []int64{src}

	for len(frontier) > 0 {
		if _, found := parent[dst]; found {
			break
		}
		next := make([]int64, 0)
		for _, u := range frontier {
			for _, v := range n.sortedNeighbors(u) {
				if _, seen := parent[v]; seen {
					continue
				}
				parent[v] = u
				next = append(next, v)
			}
		}
		frontier = next
	}

	if _, found := parent[dst]; !found {
		return nil, apperrors.ErrNoPath
	}

	var rev []int64
	for at := dst; at != src; at = parent[at] {
		rev = append(rev, at)
	}
	rev = append(rev, src)

	path := make([]string, 0, len(rev))
	for i := len(rev) - 1; i >= 0; i-- {
		path = append(path, n.codes[rev[i]])
	}
	return path, nil
}

func (n *Network) sortedNeighbors(id int64) []int64 {
	nodes := graph.NodesOf(n.g.From(id))
	out := make([]int64, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, node.ID())
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// LineSummary 依路徑順序收集行經的路線名稱（首次出現去重）。
// 每對相鄰站先查正向連線再查反向；查不到代表圖與連線資料不一致，
// 記 warning 後略過該段。
func (n *Network) LineSummary(path []string) []string {
	lines := make([]string, 0)
	seen := make(map[string]bool)

	for i := 0; i+1 < len(path); i++ {
		link, ok := n.links[pair{path[i], path[i+1]}]
		if !ok {
			link, ok = n.links[pair{path[i+1], path[i]}]
		}
		if !ok {
			logger.WithComponent("routing").Warn("no connection matches path segment",
				zap.String("from", path[i]),
				zap.String("to", path[i+1]),
				zap.String("reason", "data integrity"),
			)
			continue
		}
		if link.LineName != "" && !seen[link.LineName] {
			seen[link.LineName] = true
			lines = append(lines, link.LineName)
		}
	}
	return lines
}
