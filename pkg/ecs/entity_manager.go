// Package ecs 提供迷宫实体的存储
//
// 每个实体（小球、墙、地板、终点）是一个稳定的 EntityID，
// 物理句柄和可视句柄作为组件挂在同一个 ID 上。
// 迷宫在启动时一次性创建，运行期间实体不会被销毁。
package ecs

import (
	"reflect"
	"sort"
)

// EntityID 是实体的唯一标识符，0 保留为无效ID
type EntityID uint64

// EntityManager 管理所有实体和组件
type EntityManager struct {
	nextID uint64
	// 实体-组件映射: EntityID -> ComponentType -> Component实例
	components map[EntityID]map[reflect.Type]any
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:     1,
		components: make(map[EntityID]map[reflect.Type]any),
	}
}

// CreateEntity 创建新实体并返回唯一ID
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.components[id] = make(map[reflect.Type]any)
	return id
}

// Len 返回实体数量
func (em *EntityManager) Len() int {
	return len(em.components)
}

// AddComponent 为实体添加组件，同类型组件会被覆盖
// 组件应以指针形式添加，系统通过指针原地修改
func (em *EntityManager) AddComponent(id EntityID, component any) {
	if compMap, exists := em.components[id]; exists {
		compMap[reflect.TypeOf(component)] = component
	}
}

// GetComponent 获取实体的特定类型组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (any, bool) {
	if compMap, exists := em.components[id]; exists {
		comp, found := compMap[componentType]
		return comp, found
	}
	return nil, false
}

// GetEntitiesWith 查询拥有全部指定组件类型的实体
// 返回结果按 ID 升序排列，保证每帧遍历顺序一致
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)

	for id, compMap := range em.components {
		hasAll := true
		for _, ct := range componentTypes {
			if _, found := compMap[ct]; !found {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, id)
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// GetComponent 泛型版本的组件获取
//
// 示例:
//
//	body, ok := ecs.GetComponent[*components.BodyComponent](em, id)
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	comp, ok := em.GetComponent(id, reflect.TypeOf(zero))
	if !ok {
		return zero, false
	}
	typed, ok := comp.(T)
	return typed, ok
}

// GetEntitiesWith2 泛型版本的双组件查询
func GetEntitiesWith2[T1, T2 any](em *EntityManager) []EntityID {
	var t1 T1
	var t2 T2
	return em.GetEntitiesWith(reflect.TypeOf(t1), reflect.TypeOf(t2))
}
